package store

import (
	"context"
	"errors"
	"time"

	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hasher is the credential capability the store delegates to.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

// UserStore enforces the user record invariants on top of a Users collection.
type UserStore struct {
	users  Users
	hasher Hasher
	now    func() time.Time
}

func NewUserStore(users Users, hasher Hasher) *UserStore {
	return &UserStore{users: users, hasher: hasher, now: time.Now}
}

// Create validates and persists a new account and returns its id and role.
func (s *UserStore) Create(ctx context.Context, r models.Registration) (string, models.Role, error) {
	const op = "store.Create"

	role, err := validateRegistration(op, &r)
	if err != nil {
		return "", "", err
	}

	_, err = s.users.FindOne(ctx, Match{models.FieldEmail: r.Email})
	switch {
	case err == nil:
		return "", "", apperr.Conflict(op, "an account with this email already exists")
	case !errors.Is(err, ErrNoDocument):
		return "", "", apperr.Wrap(apperr.KindWrite, op, err, "email lookup failed")
	}

	digest, err := s.hasher.Hash(r.Password)
	if err != nil {
		return "", "", apperr.Wrap(apperr.KindWrite, op, err, "could not hash password")
	}
	r.Password = ""

	u := models.UserFromRegistration(r, role, digest, s.now())
	u.ID = primitive.NewObjectID()
	if err := s.users.Insert(ctx, &u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return "", "", apperr.Conflict(op, "an account with this email already exists")
		}
		return "", "", apperr.Wrap(apperr.KindWrite, op, err, "user registration failed")
	}
	return u.ID.Hex(), role, nil
}

// Authenticate checks a password against the digest stored for email.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	const op = "store.Authenticate"

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation(op, "email and password are required")
	}
	u, err := s.users.FindOne(ctx, Match{models.FieldEmail: email})
	if errors.Is(err, ErrNoDocument) {
		return nil, apperr.NotFound(op, "user not registered")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindWrite, op, err, "user lookup failed")
	}
	if !s.hasher.Verify(password, u.Password) {
		return nil, apperr.New(apperr.KindAuth, op, "incorrect password")
	}

	id := &models.Identity{ID: u.ID.Hex(), Role: u.Role, FullName: u.FullName}
	if u.Role == models.RolePatient {
		id.MedicalRecord = u.MedicalRecord
	}
	return id, nil
}

// GetByID returns the full account; callers project it as needed.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	const op = "store.GetByID"

	u, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	return models.AccountFromUser(u), nil
}

// FindByRole lists accounts of role that also satisfy every predicate in
// where. With fields set, only those fields (plus id and role) are loaded.
func (s *UserStore) FindByRole(ctx context.Context, role models.Role, where Match, fields ...string) ([]*models.Account, error) {
	const op = "store.FindByRole"

	match := Match{models.FieldRole: role}
	for k, v := range where {
		if k == models.FieldRole {
			continue
		}
		match[k] = v
	}
	if len(fields) > 0 {
		fields = append(fields, models.FieldRole)
	}
	users, err := s.users.Find(ctx, match, fields...)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindWrite, op, err, "user query failed")
	}
	accounts := make([]*models.Account, 0, len(users))
	for i := range users {
		accounts = append(accounts, models.AccountFromUser(&users[i]))
	}
	return accounts, nil
}

// AppendSubRecord pushes item onto coll for the given user. The item's
// natural key must not already be present in that collection.
func (s *UserStore) AppendSubRecord(ctx context.Context, userID string, coll models.Collection, item models.SubRecord) error {
	const op = "store.AppendSubRecord"

	if item == nil {
		return apperr.Validation(op, "no %s entry given", coll)
	}
	if item.Collection() != coll {
		return apperr.Validation(op, "a %s entry cannot go into %s", item.Collection(), coll)
	}
	if err := item.Prepare(); err != nil {
		return apperr.Validation(op, "%s: %v", coll, err)
	}
	key := item.NaturalKey()
	if err := coll.CheckKey(key); err != nil {
		return apperr.Validation(op, "%v", err)
	}
	u, err := s.owner(ctx, op, userID, coll)
	if err != nil {
		return err
	}

	err = s.users.Push(ctx, u.ID, string(coll), key, item)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNoDocument):
		return apperr.NotFound(op, "user %s not found", userID)
	case errors.Is(err, ErrDuplicateEntry):
		return apperr.Conflict(op, "%s already has an entry for %v", coll, key)
	default:
		return apperr.Wrap(apperr.KindWrite, op, err, "append failed")
	}
}

// RemoveSubRecord deletes the entry of coll whose natural key equals key.
func (s *UserStore) RemoveSubRecord(ctx context.Context, userID string, coll models.Collection, key models.NaturalKey) error {
	const op = "store.RemoveSubRecord"

	if err := coll.CheckKey(key); err != nil {
		return apperr.Validation(op, "%v", err)
	}
	u, err := s.owner(ctx, op, userID, coll)
	if err != nil {
		return err
	}

	err = s.users.Pull(ctx, u.ID, string(coll), key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNoDocument):
		return apperr.NotFound(op, "user %s not found", userID)
	case errors.Is(err, ErrNoEntry):
		return apperr.NotFound(op, "no %s entry for %v", coll, key)
	default:
		return apperr.Wrap(apperr.KindWrite, op, err, "remove failed")
	}
}

// SetAvailability flips a doctor's availability flag.
func (s *UserStore) SetAvailability(ctx context.Context, doctorID string, available bool) error {
	return s.setFlag(ctx, "store.SetAvailability", doctorID, models.RoleDoctor, models.FieldIsAvailable, available)
}

// SetWorking flips a staff member's working flag.
func (s *UserStore) SetWorking(ctx context.Context, staffID string, working bool) error {
	return s.setFlag(ctx, "store.SetWorking", staffID, models.RoleStaff, models.FieldIsWorking, working)
}

// ReleaseShift marks every working staff member of shift as free again and
// returns the ids it changed. Each release re-checks the flag, so a record
// updated in between is only reported when this call changed it.
func (s *UserStore) ReleaseShift(ctx context.Context, shift models.Shift) ([]string, error) {
	const op = "store.ReleaseShift"

	working := Match{models.FieldRole: models.RoleStaff, models.FieldShift: shift, models.FieldIsWorking: true}
	staff, err := s.users.Find(ctx, working, models.FieldID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindWrite, op, err, "shift lookup failed")
	}
	released := make([]string, 0, len(staff))
	for _, u := range staff {
		n, err := s.users.SetWhere(ctx,
			Match{models.FieldID: u.ID, models.FieldIsWorking: true},
			Match{models.FieldIsWorking: false},
		)
		if err != nil {
			return released, apperr.Wrap(apperr.KindWrite, op, err, "shift release failed")
		}
		if n > 0 {
			released = append(released, u.ID.Hex())
		}
	}
	return released, nil
}

func (s *UserStore) setFlag(ctx context.Context, op, userID string, role models.Role, field string, value bool) error {
	u, err := s.load(ctx, op, userID)
	if err != nil {
		return err
	}
	if u.Role != role {
		return apperr.Validation(op, "%s is only set on %s records", field, role)
	}
	err = s.users.Set(ctx, u.ID, Match{field: value})
	if errors.Is(err, ErrNoDocument) {
		return apperr.NotFound(op, "user %s not found", userID)
	}
	if err != nil {
		return apperr.Wrap(apperr.KindWrite, op, err, "update failed")
	}
	return nil
}

// owner loads the user and checks that coll belongs to its role.
func (s *UserStore) owner(ctx context.Context, op, userID string, coll models.Collection) (*models.User, error) {
	role, ok := coll.Owner()
	if !ok {
		return nil, apperr.Validation(op, "unknown collection %q", coll)
	}
	u, err := s.load(ctx, op, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, apperr.Validation(op, "%s records have no %s", u.Role, coll)
	}
	return u, nil
}

func (s *UserStore) load(ctx context.Context, op, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.Validation(op, "malformed user id %q", userID)
	}
	u, err := s.users.FindByID(ctx, oid)
	if errors.Is(err, ErrNoDocument) {
		return nil, apperr.NotFound(op, "user %s not found", userID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindWrite, op, err, "user lookup failed")
	}
	return u, nil
}
