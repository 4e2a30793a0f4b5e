package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/hospital-api/internal/models"
)

// SetWorking expects {"isWorking": bool}.
func (h *Handler) SetWorking(c *gin.Context) {
	var req struct {
		IsWorking *bool `json:"isWorking"`
	}
	if !bind(c, &req) {
		return
	}
	if req.IsWorking == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "isWorking is required", "kind": "validation"})
		return
	}

	if err := h.Access.SetStaffWorking(c.Request.Context(), actor(c), c.Param("id"), *req.IsWorking); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) StaffVisits(c *gin.Context) {
	list, err := h.Access.StaffVisits(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": list})
}

// AssignStaffVisit lets a doctor hand a visit to a staff member.
func (h *Handler) AssignStaffVisit(c *gin.Context) {
	var req models.StaffVisit
	if !bind(c, &req) {
		return
	}

	v, err := h.Access.AssignStaffVisit(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *Handler) VisitCompleted(c *gin.Context) {
	var req struct {
		VisitTime string `json:"visitTime"`
	}
	if !bind(c, &req) {
		return
	}

	if err := h.Access.VisitCompleted(c.Request.Context(), actor(c), c.Param("id"), req.VisitTime); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) AllotedDoctors(c *gin.Context) {
	list, err := h.Access.AllotedDoctors(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allotedDoctors": list})
}

func (h *Handler) ApplyForLeave(c *gin.Context) {
	var req struct {
		LeaveDates string `json:"leaveDates"`
	}
	if !bind(c, &req) {
		return
	}

	leave, err := h.Access.ApplyForLeave(c.Request.Context(), actor(c), c.Param("id"), req.LeaveDates)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, leave)
}
