package access

import (
	"time"

	"github.com/harentsoaR/hospital-api/internal/models"
)

// CurrentShift maps a wall-clock hour to the shift on duty:
// [0,12) Morning, [12,18) Afternoon, otherwise Evening.
func CurrentShift(hour int) models.Shift {
	switch {
	case hour >= 0 && hour < 12:
		return models.ShiftMorning
	case hour >= 12 && hour < 18:
		return models.ShiftAfternoon
	default:
		return models.ShiftEvening
	}
}

// TodayAppointments keeps the entries dated on now's local calendar day.
// Dates are compared as calendar dates, so 5/3/2024 and 05/03/2024 match.
func TodayAppointments(all []models.ScheduledAppointment, now time.Time) []models.ScheduledAppointment {
	today := make([]models.ScheduledAppointment, 0, len(all))
	for _, a := range all {
		if models.SameDay(a.AppointmentDate, now) {
			today = append(today, a)
		}
	}
	return today
}
