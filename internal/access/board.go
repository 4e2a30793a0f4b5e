package access

import (
	"context"
	"strings"

	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/harentsoaR/hospital-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// noticeCategory resolves the board an actor reads or writes. Empty means
// the general board; otherwise only the actor's own role board is allowed.
func noticeCategory(op string, actor Actor, category string) (string, error) {
	category = strings.ToUpper(strings.TrimSpace(category))
	switch category {
	case "", models.NoticeGeneral:
		return models.NoticeGeneral, nil
	case string(actor.Role):
		return category, nil
	}
	return "", apperr.Forbidden(op, "%s accounts cannot use the %q notice board", actor.Role, category)
}

// Notices returns the notices of one board.
func (s *Service) Notices(ctx context.Context, actor Actor, category string) ([]models.Notice, error) {
	const op = "access.Notices"

	cat, err := noticeCategory(op, actor, category)
	if err != nil {
		return nil, err
	}
	notices, err := s.notices.Find(ctx, store.Match{"category": cat})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindWrite, op, err, "notice query failed")
	}
	return notices, nil
}

// PostNotice publishes a notice from a doctor or a staff member. PostedBy
// and Date default to the author's name and today.
func (s *Service) PostNotice(ctx context.Context, actor Actor, n models.Notice) (*models.Notice, error) {
	const op = "access.PostNotice"

	if err := requireRole(op, actor, models.RoleDoctor, models.RoleStaff); err != nil {
		return nil, err
	}
	cat, err := noticeCategory(op, actor, n.Category)
	if err != nil {
		return nil, err
	}
	n.Category = cat
	n.Heading = strings.TrimSpace(n.Heading)
	n.Content = strings.TrimSpace(n.Content)
	if err := models.Validate(&n); err != nil {
		return nil, apperr.Validation(op, "%v", err)
	}
	if n.Date == "" {
		n.Date = models.FormatDate(s.now())
	} else if n.Date, err = models.NormalizeDate(n.Date); err != nil {
		return nil, apperr.Validation(op, "%v", err)
	}
	if strings.TrimSpace(n.PostedBy) == "" {
		author, err := s.account(ctx, op, actor.ID, actor.Role)
		if err != nil {
			return nil, err
		}
		n.PostedBy = author.FullName
	}

	n.ID = primitive.NewObjectID()
	if err := s.notices.Insert(ctx, &n); err != nil {
		return nil, apperr.Wrap(apperr.KindWrite, op, err, "notice could not be saved")
	}
	return &n, nil
}

// AvailableRooms returns the occupancy of every room category.
func (s *Service) AvailableRooms(ctx context.Context, _ Actor) ([]models.Room, error) {
	rooms, err := s.rooms.Find(ctx, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindWrite, "access.AvailableRooms", err, "room query failed")
	}
	return rooms, nil
}
