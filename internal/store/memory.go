package store

import (
	"context"
	"sync"

	"github.com/harentsoaR/hospital-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUsers keeps user documents as raw BSON in process. It backs tests
// and the memory STORE_BACKEND; each call holds the lock for its whole
// read-modify-write.
type MemoryUsers struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]bson.Raw
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{docs: make(map[primitive.ObjectID]bson.Raw)}
}

func (m *MemoryUsers) Insert(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	for _, doc := range m.docs {
		if matches(doc, Match{models.FieldEmail: u.Email}) {
			return ErrDuplicateEmail
		}
	}
	raw, err := bson.Marshal(u)
	if err != nil {
		return err
	}
	m.docs[u.ID] = raw
	m.order = append(m.order, u.ID)
	return nil
}

func (m *MemoryUsers) FindOne(_ context.Context, match Match) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if doc := m.docs[id]; matches(doc, match) {
			return decodeUser(doc)
		}
	}
	return nil, ErrNoDocument
}

func (m *MemoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNoDocument
	}
	return decodeUser(doc)
}

func (m *MemoryUsers) Find(_ context.Context, match Match, fields ...string) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := []models.User{}
	for _, id := range m.order {
		doc := m.docs[id]
		if !matches(doc, match) {
			continue
		}
		projected, err := project(doc, fields)
		if err != nil {
			return nil, err
		}
		u, err := decodeUser(projected)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (m *MemoryUsers) Push(_ context.Context, id primitive.ObjectID, field string, key models.NaturalKey, item interface{}) error {
	return m.update(id, func(doc bson.Raw) (bson.Raw, error) {
		return pushEntry(doc, field, key, item)
	})
}

func (m *MemoryUsers) Pull(_ context.Context, id primitive.ObjectID, field string, key models.NaturalKey) error {
	return m.update(id, func(doc bson.Raw) (bson.Raw, error) {
		return pullEntry(doc, field, key)
	})
}

func (m *MemoryUsers) Set(_ context.Context, id primitive.ObjectID, fields Match) error {
	return m.update(id, func(doc bson.Raw) (bson.Raw, error) {
		return setFields(doc, fields)
	})
}

func (m *MemoryUsers) SetWhere(_ context.Context, match Match, fields Match) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, id := range m.order {
		doc := m.docs[id]
		if !matches(doc, match) {
			continue
		}
		out, err := setFields(doc, fields)
		if err != nil {
			return n, err
		}
		m.docs[id] = out
		n++
	}
	return n, nil
}

func (m *MemoryUsers) update(id primitive.ObjectID, fn func(bson.Raw) (bson.Raw, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return ErrNoDocument
	}
	out, err := fn(doc)
	if err != nil {
		return err
	}
	m.docs[id] = out
	return nil
}

func decodeUser(doc bson.Raw) (*models.User, error) {
	var u models.User
	if err := bson.Unmarshal(doc, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// MemoryRecords is the in-process Records implementation.
type MemoryRecords[T any] struct {
	mu   sync.RWMutex
	docs []bson.Raw
}

func NewMemoryRecords[T any]() *MemoryRecords[T] {
	return &MemoryRecords[T]{}
}

func (m *MemoryRecords[T]) Insert(_ context.Context, doc *T) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs = append(m.docs, raw)
	m.mu.Unlock()
	return nil
}

func (m *MemoryRecords[T]) Find(_ context.Context, match Match) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []T{}
	for _, raw := range m.docs {
		if !matches(raw, match) {
			continue
		}
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
