package access

import (
	"context"
	"strings"

	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffVisits returns the visits a staff member still has to make.
func (s *Service) StaffVisits(ctx context.Context, actor Actor, staffID string) ([]models.StaffVisit, error) {
	const op = "access.StaffVisits"

	if err := requireSelfOr(op, actor, models.RoleStaff, staffID, models.RoleDoctor); err != nil {
		return nil, err
	}
	acc, err := s.account(ctx, op, staffID, models.RoleStaff)
	if err != nil {
		return nil, err
	}
	return acc.Staff.StaffVisits, nil
}

// VisitCompleted drops the visit scheduled at visitTime from the staff
// member's own list.
func (s *Service) VisitCompleted(ctx context.Context, actor Actor, staffID, visitTime string) error {
	if err := requireSelf("access.VisitCompleted", actor, models.RoleStaff, staffID); err != nil {
		return err
	}
	return s.users.RemoveSubRecord(ctx, staffID, models.StaffVisits, models.KeyOf("visitTime", visitTime))
}

// AllotedDoctors returns the doctors a staff member is helping.
func (s *Service) AllotedDoctors(ctx context.Context, actor Actor, staffID string) ([]models.DoctorAllotment, error) {
	const op = "access.AllotedDoctors"

	if err := requireSelfOr(op, actor, models.RoleStaff, staffID, models.RoleDoctor); err != nil {
		return nil, err
	}
	acc, err := s.account(ctx, op, staffID, models.RoleStaff)
	if err != nil {
		return nil, err
	}
	return acc.Staff.AllotedDoctors, nil
}

// ApplyForLeave files a pending leave request for the calling staff member.
func (s *Service) ApplyForLeave(ctx context.Context, actor Actor, staffID, dates string) (*models.LeaveRequest, error) {
	const op = "access.ApplyForLeave"

	if err := requireSelf(op, actor, models.RoleStaff, staffID); err != nil {
		return nil, err
	}
	dates = strings.TrimSpace(dates)
	if dates == "" {
		return nil, apperr.Validation(op, "leaveDates is required")
	}
	staff, err := s.account(ctx, op, staffID, models.RoleStaff)
	if err != nil {
		return nil, err
	}

	leave := &models.LeaveRequest{
		ID:         primitive.NewObjectID(),
		StaffID:    staff.ID,
		StaffName:  staff.FullName,
		LeaveDates: dates,
	}
	if err := s.leaves.Insert(ctx, leave); err != nil {
		return nil, apperr.Wrap(apperr.KindWrite, op, err, "leave request could not be saved")
	}
	s.log.WithFields(logrus.Fields{"staffId": staff.ID, "leaveId": leave.ID.Hex()}).Info("leave requested")
	return leave, nil
}

// ReleaseShift frees the working staff of shift and drops their cached
// profiles. It returns how many records changed, including those released
// before a failure.
func (s *Service) ReleaseShift(ctx context.Context, shift models.Shift) (int, error) {
	ids, err := s.users.ReleaseShift(ctx, shift)
	for _, id := range ids {
		s.forget(ctx, id)
	}
	return len(ids), err
}
