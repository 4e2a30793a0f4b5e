package access

import (
	"context"
	"strings"

	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/sirupsen/logrus"
)

// HelperInput assigns a staff member to a doctor at a given time.
type HelperInput struct {
	StaffID       string `json:"staffID"`
	AllotmentTime string `json:"allotmentTime"`
	Task          string `json:"task"`
}

// ScheduledAppointments returns the doctor's appointments for today.
func (s *Service) ScheduledAppointments(ctx context.Context, actor Actor, doctorID string) ([]models.ScheduledAppointment, error) {
	const op = "access.ScheduledAppointments"

	if err := requireSelfOr(op, actor, models.RoleDoctor, doctorID, models.RoleStaff); err != nil {
		return nil, err
	}
	acc, err := s.account(ctx, op, doctorID, models.RoleDoctor)
	if err != nil {
		return nil, err
	}
	return TodayAppointments(acc.Doctor.ScheduledAppointments, s.now()), nil
}

// ScheduleAppointment books a slot on the doctor's own agenda. The patient
// must exist; their name is copied from the record when not given.
func (s *Service) ScheduleAppointment(ctx context.Context, actor Actor, doctorID string, a models.ScheduledAppointment) (*models.ScheduledAppointment, error) {
	const op = "access.ScheduleAppointment"

	if err := requireSelf(op, actor, models.RoleDoctor, doctorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.PatientID) == "" {
		return nil, apperr.Validation(op, "patientID is required")
	}
	patient, err := s.account(ctx, op, a.PatientID, models.RolePatient)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.PatientName) == "" {
		a.PatientName = patient.FullName
	}
	if err := s.users.AppendSubRecord(ctx, doctorID, models.ScheduledAppointments, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DoctorVisits returns the ward rounds on a doctor's list.
func (s *Service) DoctorVisits(ctx context.Context, actor Actor, doctorID string) ([]models.DoctorVisit, error) {
	const op = "access.DoctorVisits"

	if err := requireSelfOr(op, actor, models.RoleDoctor, doctorID, models.RoleStaff); err != nil {
		return nil, err
	}
	acc, err := s.account(ctx, op, doctorID, models.RoleDoctor)
	if err != nil {
		return nil, err
	}
	return acc.Doctor.DoctorVisits, nil
}

func (s *Service) AddDoctorVisit(ctx context.Context, actor Actor, doctorID string, v models.DoctorVisit) (*models.DoctorVisit, error) {
	if err := requireSelf("access.AddDoctorVisit", actor, models.RoleDoctor, doctorID); err != nil {
		return nil, err
	}
	if err := s.users.AppendSubRecord(ctx, doctorID, models.DoctorVisits, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// AssignStaffVisit puts a task on a staff member's visit list.
func (s *Service) AssignStaffVisit(ctx context.Context, actor Actor, staffID string, v models.StaffVisit) (*models.StaffVisit, error) {
	const op = "access.AssignStaffVisit"

	if err := requireRole(op, actor, models.RoleDoctor); err != nil {
		return nil, err
	}
	if _, err := s.account(ctx, op, staffID, models.RoleStaff); err != nil {
		return nil, err
	}
	if err := s.users.AppendSubRecord(ctx, staffID, models.StaffVisits, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// AssignedHelpers returns the staff allotted to a doctor.
func (s *Service) AssignedHelpers(ctx context.Context, actor Actor, doctorID string) ([]models.StaffAllotment, error) {
	const op = "access.AssignedHelpers"

	if err := requireSelfOr(op, actor, models.RoleDoctor, doctorID, models.RoleStaff); err != nil {
		return nil, err
	}
	acc, err := s.account(ctx, op, doctorID, models.RoleDoctor)
	if err != nil {
		return nil, err
	}
	return acc.Doctor.AllotedStaff, nil
}

// AllotHelper records the assignment on both sides and marks the staff
// member as working. Only the doctor-side write failing is a plain error;
// anything failing after it is reported as a partial failure.
func (s *Service) AllotHelper(ctx context.Context, actor Actor, doctorID string, in HelperInput) (*models.StaffAllotment, error) {
	const op = "access.AllotHelper"

	if err := requireSelf(op, actor, models.RoleDoctor, doctorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.StaffID) == "" {
		return nil, apperr.Validation(op, "staffID is required")
	}
	doctor, err := s.account(ctx, op, doctorID, models.RoleDoctor)
	if err != nil {
		return nil, err
	}
	helper, err := s.account(ctx, op, in.StaffID, models.RoleStaff)
	if err != nil {
		return nil, err
	}
	for _, d := range helper.Staff.AllotedDoctors {
		if d.AllotmentTime == in.AllotmentTime {
			return nil, apperr.Conflict(op, "%s is already allotted at %s", helper.FullName, in.AllotmentTime)
		}
	}

	mine := &models.StaffAllotment{
		AllotmentTime: in.AllotmentTime,
		StaffID:       helper.ID,
		StaffName:     helper.FullName,
		StaffPost:     helper.Staff.StaffPost,
		Task:          in.Task,
	}
	if err := s.users.AppendSubRecord(ctx, doctor.ID, models.AllotedStaff, mine); err != nil {
		return nil, err
	}

	logger := s.log.WithFields(logrus.Fields{"doctorId": doctor.ID, "staffId": helper.ID, "allotmentTime": mine.AllotmentTime})
	theirs := &models.DoctorAllotment{
		AllotmentTime: mine.AllotmentTime,
		DoctorID:      doctor.ID,
		DoctorName:    doctor.FullName,
		CabinNumber:   doctor.Doctor.CabinNumber,
		Task:          mine.Task,
	}
	if err := s.users.AppendSubRecord(ctx, helper.ID, models.AllotedDoctors, theirs); err != nil {
		logger.WithError(err).Error("helper allotted on the doctor record only")
		return mine, apperr.NewPartialFailure(op, doctor.ID, err)
	}
	if err := s.users.SetWorking(ctx, helper.ID, true); err != nil {
		logger.WithError(err).Error("helper allotted but still marked free")
		return mine, apperr.NewPartialFailure(op, doctor.ID, err)
	}
	s.forget(ctx, helper.ID)
	logger.Info("helper allotted")
	return mine, nil
}
