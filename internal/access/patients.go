package access

import (
	"context"
	"strconv"
	"strings"

	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentInput is what a patient files when asking for an appointment.
type AppointmentInput struct {
	PatientID   string `json:"patientID"`
	PatientName string `json:"patientName"`
	Problem     string `json:"problem"`
}

// UpcomingAppointments returns a patient's requested and booked visits.
func (s *Service) UpcomingAppointments(ctx context.Context, actor Actor, patientID string) ([]models.UpcomingAppointment, error) {
	const op = "access.UpcomingAppointments"

	if err := requireSelfOr(op, actor, models.RolePatient, patientID, models.RoleDoctor, models.RoleStaff); err != nil {
		return nil, err
	}
	acc, err := s.account(ctx, op, patientID, models.RolePatient)
	if err != nil {
		return nil, err
	}
	return acc.Patient.UpcomingAppointments, nil
}

// RequestAppointment records an AppointmentRequest and appends the matching
// pending entry to the patient's upcoming appointments. When the request is
// stored but the append fails, the error is a partial failure carrying the
// request id.
func (s *Service) RequestAppointment(ctx context.Context, actor Actor, in AppointmentInput) (*models.AppointmentRequest, error) {
	const op = "access.RequestAppointment"

	if err := requireSelf(op, actor, models.RolePatient, in.PatientID); err != nil {
		return nil, err
	}
	problem := strings.TrimSpace(in.Problem)
	if problem == "" {
		return nil, apperr.Validation(op, "problem is required")
	}
	patient, err := s.account(ctx, op, in.PatientID, models.RolePatient)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.PatientName)
	if name == "" {
		name = patient.FullName
	}

	req := &models.AppointmentRequest{
		ID:          primitive.NewObjectID(),
		PatientID:   patient.ID,
		PatientName: name,
		Problem:     problem,
		CreatedAt:   s.now(),
	}
	if err := s.requests.Insert(ctx, req); err != nil {
		return nil, apperr.Wrap(apperr.KindWrite, op, err, "appointment request could not be saved")
	}

	reqID := req.ID.Hex()
	logger := s.log.WithFields(logrus.Fields{"patientId": patient.ID, "requestId": reqID})
	if err := s.users.AppendSubRecord(ctx, patient.ID, models.UpcomingAppointments, models.PendingAppointment(reqID, problem)); err != nil {
		logger.WithError(err).Error("appointment request saved but not added to the patient record")
		return req, apperr.NewPartialFailure(op, reqID, err)
	}
	logger.Info("appointment requested")

	s.notifier.AppointmentRequested(patient, req)
	return req, nil
}

// Prescriptions returns what doctors have prescribed to a patient.
func (s *Service) Prescriptions(ctx context.Context, actor Actor, patientID string) ([]models.Prescription, error) {
	const op = "access.Prescriptions"

	if err := requireSelfOr(op, actor, models.RolePatient, patientID, models.RoleDoctor); err != nil {
		return nil, err
	}
	acc, err := s.account(ctx, op, patientID, models.RolePatient)
	if err != nil {
		return nil, err
	}
	return acc.Patient.Prescriptions, nil
}

// AddPrescription lets a doctor write onto a patient's record. The doctor's
// name and a millisecond timestamp are filled in when left empty.
func (s *Service) AddPrescription(ctx context.Context, actor Actor, patientID string, p models.Prescription) (*models.Prescription, error) {
	const op = "access.AddPrescription"

	if err := requireRole(op, actor, models.RoleDoctor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.DoctorName) == "" {
		doctor, err := s.account(ctx, op, actor.ID, models.RoleDoctor)
		if err != nil {
			return nil, err
		}
		p.DoctorName = doctor.FullName
	}
	if p.Timestamp == "" {
		p.Timestamp = strconv.FormatInt(s.now().UnixMilli(), 10)
	}
	if _, err := s.account(ctx, op, patientID, models.RolePatient); err != nil {
		return nil, err
	}
	if err := s.users.AppendSubRecord(ctx, patientID, models.Prescriptions, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePrescription removes the prescription written at timestamp.
func (s *Service) DeletePrescription(ctx context.Context, actor Actor, patientID, timestamp string) error {
	const op = "access.DeletePrescription"

	if err := requireSelfOr(op, actor, models.RolePatient, patientID, models.RoleDoctor); err != nil {
		return err
	}
	if _, err := s.account(ctx, op, patientID, models.RolePatient); err != nil {
		return err
	}
	return s.users.RemoveSubRecord(ctx, patientID, models.Prescriptions, models.KeyOf("timestamp", timestamp))
}
