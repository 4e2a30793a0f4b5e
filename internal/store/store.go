// Package store owns the user record collection and the flat record
// collections that sit next to it.
package store

import (
	"context"
	"errors"

	"github.com/harentsoaR/hospital-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoDocument     = errors.New("store: no document")
	ErrNoEntry        = errors.New("store: no matching sub-record")
	ErrDuplicateEntry = errors.New("store: sub-record key already present")
	ErrDuplicateEmail = errors.New("store: email already registered")
)

// Match is a conjunction of field equality predicates.
type Match map[string]interface{}

// Users is the document collection holding every account. Push and Pull
// address embedded lists by natural key and must each be atomic for a
// single document.
type Users interface {
	Insert(ctx context.Context, u *models.User) error
	FindOne(ctx context.Context, match Match) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Find(ctx context.Context, match Match, fields ...string) ([]models.User, error)
	Push(ctx context.Context, id primitive.ObjectID, field string, key models.NaturalKey, item interface{}) error
	Pull(ctx context.Context, id primitive.ObjectID, field string, key models.NaturalKey) error
	Set(ctx context.Context, id primitive.ObjectID, fields Match) error
	SetWhere(ctx context.Context, match Match, fields Match) (int64, error)
}

// Records is a flat collection of independent documents such as notices.
type Records[T any] interface {
	Insert(ctx context.Context, doc *T) error
	Find(ctx context.Context, match Match) ([]T, error)
}
