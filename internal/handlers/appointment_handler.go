package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/hospital-api/internal/access"
	"github.com/harentsoaR/hospital-api/internal/models"
)

// RequestAppointment files a request and puts a pending entry on the
// patient's list. A partial failure still answers with the request id.
func (h *Handler) RequestAppointment(c *gin.Context) {
	var req access.AppointmentInput
	if !bind(c, &req) {
		return
	}
	if req.PatientID == "" {
		req.PatientID = actor(c).ID
	}

	apt, err := h.Access.RequestAppointment(c.Request.Context(), actor(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "request": apt})
}

// UpcomingAppointments lists a patient's requested and booked visits.
func (h *Handler) UpcomingAppointments(c *gin.Context) {
	list, err := h.Access.UpcomingAppointments(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcomingAppointments": list})
}

// ScheduledAppointments lists today's agenda of a doctor.
func (h *Handler) ScheduledAppointments(c *gin.Context) {
	list, err := h.Access.ScheduledAppointments(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheduledAppointments": list})
}

func (h *Handler) ScheduleAppointment(c *gin.Context) {
	var req models.ScheduledAppointment
	if !bind(c, &req) {
		return
	}

	apt, err := h.Access.ScheduleAppointment(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, apt)
}
