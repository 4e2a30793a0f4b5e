package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/hospital-api/internal/models"
)

func (h *Handler) Prescriptions(c *gin.Context) {
	list, err := h.Access.Prescriptions(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prescriptions": list})
}

// AddPrescription writes a doctor's prescription onto the patient record.
func (h *Handler) AddPrescription(c *gin.Context) {
	var req models.Prescription
	if !bind(c, &req) {
		return
	}

	p, err := h.Access.AddPrescription(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) DeletePrescription(c *gin.Context) {
	var req struct {
		PatientID string `json:"patientID"`
		Timestamp string `json:"timestamp"`
	}
	if !bind(c, &req) {
		return
	}

	if err := h.Access.DeletePrescription(c.Request.Context(), actor(c), req.PatientID, req.Timestamp); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
