package access

import (
	"context"

	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/harentsoaR/hospital-api/internal/store"
	"github.com/sirupsen/logrus"
)

// Register creates an account. It is open to unauthenticated callers.
func (s *Service) Register(ctx context.Context, r models.Registration) (string, models.Role, error) {
	id, role, err := s.users.Create(ctx, r)
	if err != nil {
		return "", "", err
	}
	s.log.WithFields(logrus.Fields{"userId": id, "role": role}).Info("user registered")
	return id, role, nil
}

// Login checks credentials and returns the identity the session is built on.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	ident, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		if apperr.Is(err, apperr.KindAuth) {
			s.log.WithField("email", email).Warn("login with incorrect password")
		}
		return nil, err
	}
	return ident, nil
}

// UserDetails returns the role projection of a profile. Patients may only
// read their own; doctors and staff may read anyone's.
func (s *Service) UserDetails(ctx context.Context, actor Actor, userID string) (*models.Profile, error) {
	const op = "access.UserDetails"

	if err := requireSelfOr(op, actor, actor.Role, userID, models.RoleDoctor, models.RoleStaff); err != nil {
		return nil, err
	}

	cached, err := s.profiles.Get(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("userId", userID).Warn("profile cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	acc, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := acc.Profile()
	if err := s.profiles.Set(ctx, userID, &p); err != nil {
		s.log.WithError(err).WithField("userId", userID).Warn("profile cache write failed")
	}
	return &p, nil
}

// DoctorsList returns every registered doctor.
func (s *Service) DoctorsList(ctx context.Context, _ Actor) ([]models.DoctorSummary, error) {
	return s.doctors(ctx, nil)
}

// AvailableDoctors returns the doctors currently taking appointments.
func (s *Service) AvailableDoctors(ctx context.Context, _ Actor) ([]models.DoctorSummary, error) {
	return s.doctors(ctx, store.Match{models.FieldIsAvailable: true})
}

func (s *Service) doctors(ctx context.Context, where store.Match) ([]models.DoctorSummary, error) {
	accounts, err := s.users.FindByRole(ctx, models.RoleDoctor, where,
		models.FieldFullName, models.FieldDepartment, models.FieldCabinNumber)
	if err != nil {
		return nil, err
	}
	out := make([]models.DoctorSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, models.DoctorSummary{
			ID:          a.ID,
			FullName:    a.FullName,
			Department:  a.Doctor.Department,
			CabinNumber: a.Doctor.CabinNumber,
		})
	}
	return out, nil
}

// SetDoctorAvailability lets a doctor open or close their own agenda.
func (s *Service) SetDoctorAvailability(ctx context.Context, actor Actor, doctorID string, available bool) error {
	if err := requireSelf("access.SetDoctorAvailability", actor, models.RoleDoctor, doctorID); err != nil {
		return err
	}
	if err := s.users.SetAvailability(ctx, doctorID, available); err != nil {
		return err
	}
	s.forget(ctx, doctorID)
	return nil
}

// AvailableHelpers lists idle staff rostered on the shift in progress.
func (s *Service) AvailableHelpers(ctx context.Context, actor Actor) ([]models.HelperSummary, error) {
	if err := requireRole("access.AvailableHelpers", actor, models.RoleDoctor, models.RoleStaff); err != nil {
		return nil, err
	}
	shift := CurrentShift(s.now().Hour())
	accounts, err := s.users.FindByRole(ctx, models.RoleStaff,
		store.Match{models.FieldShift: shift, models.FieldIsWorking: false},
		models.FieldFullName, models.FieldStaffPost, models.FieldShift)
	if err != nil {
		return nil, err
	}
	out := make([]models.HelperSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, models.HelperSummary{
			ID:        a.ID,
			FullName:  a.FullName,
			StaffPost: a.Staff.StaffPost,
			Shift:     a.Staff.Shift,
		})
	}
	return out, nil
}

// SetStaffWorking lets a staff member mark themselves busy or free.
func (s *Service) SetStaffWorking(ctx context.Context, actor Actor, staffID string, working bool) error {
	if err := requireSelf("access.SetStaffWorking", actor, models.RoleStaff, staffID); err != nil {
		return err
	}
	if err := s.users.SetWorking(ctx, staffID, working); err != nil {
		return err
	}
	s.forget(ctx, staffID)
	return nil
}
