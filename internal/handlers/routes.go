package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Routes mounts the public and the authenticated endpoints on r.
func (h *Handler) Routes(r gin.IRouter, auth gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(auth) // Protect all /api routes
	{
		apiRoutes.GET("/users/:id", h.GetUserDetails)

		// Doctors
		apiRoutes.GET("/doctors", h.DoctorsList)
		apiRoutes.GET("/doctors/available", h.AvailableDoctors)
		apiRoutes.PATCH("/doctors/:id/availability", h.SetAvailability)
		apiRoutes.GET("/doctors/:id/appointments", h.ScheduledAppointments)
		apiRoutes.POST("/doctors/:id/appointments", h.ScheduleAppointment)
		apiRoutes.GET("/doctors/:id/visits", h.DoctorVisits)
		apiRoutes.POST("/doctors/:id/visits", h.AddDoctorVisit)
		apiRoutes.GET("/doctors/:id/helpers", h.AssignedHelpers)
		apiRoutes.POST("/doctors/:id/helpers", h.AllotHelper)
		apiRoutes.GET("/helpers/available", h.AvailableHelpers)

		// Staff
		apiRoutes.PATCH("/staff/:id/working", h.SetWorking)
		apiRoutes.GET("/staff/:id/visits", h.StaffVisits)
		apiRoutes.POST("/staff/:id/visits", h.AssignStaffVisit)
		apiRoutes.POST("/staff/:id/visits/complete", h.VisitCompleted)
		apiRoutes.GET("/staff/:id/doctors", h.AllotedDoctors)
		apiRoutes.POST("/staff/:id/leave", h.ApplyForLeave)

		// Patients
		apiRoutes.GET("/patients/:id/appointments", h.UpcomingAppointments)
		apiRoutes.POST("/appointments/request", h.RequestAppointment)
		apiRoutes.GET("/patients/:id/prescriptions", h.Prescriptions)
		apiRoutes.POST("/patients/:id/prescriptions", h.AddPrescription)
		apiRoutes.POST("/prescriptions/delete", h.DeletePrescription)

		// Boards
		apiRoutes.GET("/notices", h.Notices)
		apiRoutes.POST("/notices", h.PostNotice)
		apiRoutes.GET("/rooms", h.AvailableRooms)
	}
}
