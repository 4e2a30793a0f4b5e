// Package access decides what an authenticated actor may read or change and
// turns each permitted action into User Record Store calls.
package access

import (
	"context"
	"time"

	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/harentsoaR/hospital-api/internal/store"
	"github.com/sirupsen/logrus"
)

// UserRecords is the part of the User Record Store the access layer uses.
type UserRecords interface {
	Create(ctx context.Context, r models.Registration) (string, models.Role, error)
	Authenticate(ctx context.Context, email, password string) (*models.Identity, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	FindByRole(ctx context.Context, role models.Role, where store.Match, fields ...string) ([]*models.Account, error)
	AppendSubRecord(ctx context.Context, userID string, coll models.Collection, item models.SubRecord) error
	RemoveSubRecord(ctx context.Context, userID string, coll models.Collection, key models.NaturalKey) error
	SetAvailability(ctx context.Context, doctorID string, available bool) error
	SetWorking(ctx context.Context, staffID string, working bool) error
	ReleaseShift(ctx context.Context, shift models.Shift) ([]string, error)
}

// ProfileCache holds userDetails projections. Get returns nil, nil on a miss.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	Set(ctx context.Context, id string, p *models.Profile) error
	Delete(ctx context.Context, id string) error
}

// Notifier is told about appointment requests once they are fully recorded.
type Notifier interface {
	AppointmentRequested(patient *models.Account, req *models.AppointmentRequest)
}

// Deps are the collaborators a Service is built from. Profiles, Notifier,
// Logger and Now are optional.
type Deps struct {
	Users    UserRecords
	Notices  store.Records[models.Notice]
	Requests store.Records[models.AppointmentRequest]
	Rooms    store.Records[models.Room]
	Leaves   store.Records[models.LeaveRequest]
	Profiles ProfileCache
	Notifier Notifier
	Logger   *logrus.Logger
	Now      func() time.Time
}

type Service struct {
	users    UserRecords
	notices  store.Records[models.Notice]
	requests store.Records[models.AppointmentRequest]
	rooms    store.Records[models.Room]
	leaves   store.Records[models.LeaveRequest]
	profiles ProfileCache
	notifier Notifier
	log      *logrus.Logger
	now      func() time.Time
}

func NewService(d Deps) *Service {
	s := &Service{
		users:    d.Users,
		notices:  d.Notices,
		requests: d.Requests,
		rooms:    d.Rooms,
		leaves:   d.Leaves,
		profiles: d.Profiles,
		notifier: d.Notifier,
		log:      d.Logger,
		now:      d.Now,
	}
	if s.profiles == nil {
		s.profiles = noCache{}
	}
	if s.notifier == nil {
		s.notifier = noNotifier{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// account loads id and checks it holds role. A record of another role is
// reported as not found so callers cannot probe ids across roles.
func (s *Service) account(ctx context.Context, op, id string, role models.Role) (*models.Account, error) {
	acc, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc.Role != role {
		return nil, apperr.NotFound(op, "no %s with id %s", role, id)
	}
	return acc, nil
}

func (s *Service) forget(ctx context.Context, id string) {
	if err := s.profiles.Delete(ctx, id); err != nil {
		s.log.WithError(err).WithField("userId", id).Warn("profile cache invalidation failed")
	}
}

type noCache struct{}

func (noCache) Get(context.Context, string) (*models.Profile, error) { return nil, nil }
func (noCache) Set(context.Context, string, *models.Profile) error { return nil }
func (noCache) Delete(context.Context, string) error { return nil }

type noNotifier struct{}

func (noNotifier) AppointmentRequested(*models.Account, *models.AppointmentRequest) {}
