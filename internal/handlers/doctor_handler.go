package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/hospital-api/internal/access"
	"github.com/harentsoaR/hospital-api/internal/models"
)

func (h *Handler) DoctorsList(c *gin.Context) {
	list, err := h.Access.DoctorsList(c.Request.Context(), actor(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorsList": list})
}

func (h *Handler) AvailableDoctors(c *gin.Context) {
	list, err := h.Access.AvailableDoctors(c.Request.Context(), actor(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorsList": list})
}

// SetAvailability expects {"isAvailable": bool}.
func (h *Handler) SetAvailability(c *gin.Context) {
	var req struct {
		IsAvailable *bool `json:"isAvailable"`
	}
	if !bind(c, &req) {
		return
	}
	if req.IsAvailable == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "isAvailable is required", "kind": "validation"})
		return
	}

	if err := h.Access.SetDoctorAvailability(c.Request.Context(), actor(c), c.Param("id"), *req.IsAvailable); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DoctorVisits(c *gin.Context) {
	list, err := h.Access.DoctorVisits(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": list})
}

func (h *Handler) AddDoctorVisit(c *gin.Context) {
	var req models.DoctorVisit
	if !bind(c, &req) {
		return
	}

	v, err := h.Access.AddDoctorVisit(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *Handler) AssignedHelpers(c *gin.Context) {
	list, err := h.Access.AssignedHelpers(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allotedStaff": list})
}

// AllotHelper assigns an idle staff member to the doctor.
func (h *Handler) AllotHelper(c *gin.Context) {
	var req access.HelperInput
	if !bind(c, &req) {
		return
	}

	a, err := h.Access.AllotHelper(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) AvailableHelpers(c *gin.Context) {
	list, err := h.Access.AvailableHelpers(c.Request.Context(), actor(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"helpers": list})
}
