package store

import (
	"context"
	"errors"
	"testing"

	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type prefixHasher struct{}

func (prefixHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }

func (prefixHasher) Verify(secret, digest string) bool { return digest == "hashed:"+secret }

func newTestStore() (*UserStore, *MemoryUsers) {
	users := NewMemoryUsers()
	return NewUserStore(users, prefixHasher{}), users
}

func registration(role, email string) models.Registration {
	r := models.Registration{
		FullName:    "Test User",
		Address:     "1 Main St",
		DOB:         "01/01/1990",
		Gender:      "F",
		PhoneNumber: "5551234",
		Email:       email,
		Password:    "secret1",
		Role:        role,
	}
	switch role {
	case "D":
		r.Department = "Cardiology"
		r.CabinNumber = "C-12"
	case "P":
		r.MedicalRecord = "MR-1"
	case "S":
		r.StaffPost = "Nurse"
		r.Shift = "Morning"
	}
	return r
}

func mustCreate(t *testing.T, s *UserStore, role, email string) string {
	t.Helper()
	id, _, err := s.Create(context.Background(), registration(role, email))
	require.NoError(t, err)
	return id
}

func TestCreateAndAuthenticate(t *testing.T) {
	s, users := newTestStore()
	ctx := context.Background()

	r := registration("P", " Alice@Example.com ")
	r.Role = "patient"
	id, role, err := s.Create(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, role)

	stored, err := users.FindOne(ctx, Match{models.FieldEmail: "alice@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.Equal(t, id, stored.ID.Hex())

	ident, err := s.Authenticate(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, ident.ID)
	assert.Equal(t, models.RolePatient, ident.Role)
	assert.Equal(t, "MR-1", ident.MedicalRecord)

	_, err = s.Authenticate(ctx, "alice@example.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.KindAuth))

	_, err = s.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	cases := map[string]func(r *models.Registration){
		"missing name":  func(r *models.Registration) { r.FullName = "" },
		"short dob":     func(r *models.Registration) { r.DOB = "1/1/1990" },
		"long gender":   func(r *models.Registration) { r.Gender = "FM" },
		"phone letters": func(r *models.Registration) { r.PhoneNumber = "55-12" },
		"bad email":     func(r *models.Registration) { r.Email = "nope" },
		"bare at sign":  func(r *models.Registration) { r.Email = "@" },
		"blank address": func(r *models.Registration) { r.Address = "   " },
		"bad shift":     func(r *models.Registration) { r.Role = "S"; r.Shift = "night" },
		"short pass":    func(r *models.Registration) { r.Password = "abc" },
		"bad role":      func(r *models.Registration) { r.Role = "admin" },
		"no shift":      func(r *models.Registration) { r.Role = "S"; r.Shift = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := registration("P", "x@example.com")
			mutate(&r)
			_, _, err := s.Create(ctx, r)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestCreateCountsCharactersNotBytes(t *testing.T) {
	s, _ := newTestStore()
	r := registration("P", "zoe@example.com")
	r.Gender = "é"

	_, _, err := s.Create(context.Background(), r)
	assert.NoError(t, err)
}

func TestCreateAcceptsLongRoleAndShiftNames(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	r := registration("S", "sam@example.com")
	r.Role = "staff"
	r.Shift = " evening "

	id, role, err := s.Create(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, role)

	acc, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, acc.Staff)
	assert.Equal(t, models.ShiftEvening, acc.Staff.Shift)
}

func TestCreateDuplicateEmail(t *testing.T) {
	s, _ := newTestStore()
	mustCreate(t, s, "P", "dup@example.com")

	_, _, err := s.Create(context.Background(), registration("D", "DUP@example.com"))
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestGetByIDReturnsRoleVariant(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	id := mustCreate(t, s, "D", "doc@example.com")

	acc, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, acc.Doctor)
	assert.Nil(t, acc.Patient)
	assert.True(t, acc.Doctor.IsAvailable)
	assert.Empty(t, acc.Doctor.ScheduledAppointments)

	_, err = s.GetByID(ctx, "not-an-id")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = s.GetByID(ctx, "64b7f0c2a1b2c3d4e5f60718")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestFindByRoleWithFilterAndProjection(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	a := mustCreate(t, s, "D", "a@example.com")
	b := mustCreate(t, s, "D", "b@example.com")
	mustCreate(t, s, "P", "p@example.com")

	require.NoError(t, s.SetAvailability(ctx, b, false))

	all, err := s.FindByRole(ctx, models.RoleDoctor, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	avail, err := s.FindByRole(ctx, models.RoleDoctor, Match{models.FieldIsAvailable: true}, models.FieldFullName)
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, a, avail[0].ID)
	assert.Equal(t, "Test User", avail[0].FullName)
	assert.Empty(t, avail[0].Email)
	require.NotNil(t, avail[0].Doctor)
}

func TestAppendSubRecordAppearsOnceAtEnd(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	id := mustCreate(t, s, "S", "s@example.com")

	for _, at := range []string{"09:00", "10:00"} {
		v := &models.StaffVisit{VisitTime: at, PatientName: "Bob", PatientRoomNumber: "101"}
		require.NoError(t, s.AppendSubRecord(ctx, id, models.StaffVisits, v))
	}

	acc, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, acc.Staff.StaffVisits, 2)
	assert.Equal(t, "10:00", acc.Staff.StaffVisits[1].VisitTime)

	dup := &models.StaffVisit{VisitTime: "10:00", PatientName: "Eve", PatientRoomNumber: "102"}
	err = s.AppendSubRecord(ctx, id, models.StaffVisits, dup)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	acc, err = s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, acc.Staff.StaffVisits, 2)
}

func TestAppendSubRecordChecksRoleAndInput(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	patient := mustCreate(t, s, "P", "p@example.com")

	visit := &models.DoctorVisit{VisitTime: "09:00", PatientName: "Bob", PatientRoomNumber: "3"}
	err := s.AppendSubRecord(ctx, patient, models.DoctorVisits, visit)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	err = s.AppendSubRecord(ctx, patient, models.Prescriptions, visit)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	err = s.AppendSubRecord(ctx, patient, models.Prescriptions, &models.Prescription{Timestamp: "t1", DoctorName: "Dr"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	err = s.AppendSubRecord(ctx, "64b7f0c2a1b2c3d4e5f60718", models.Prescriptions, &models.Prescription{
		Timestamp: "t1", DoctorName: "Dr", Medicines: []models.Medicine{{MedicineName: "Aspirin"}},
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRemoveSubRecordKeepsOrder(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	id := mustCreate(t, s, "P", "p@example.com")

	for _, ts := range []string{"t1", "t2", "t3"} {
		p := &models.Prescription{Timestamp: ts, DoctorName: "Dr", Medicines: []models.Medicine{{MedicineName: "Aspirin"}}}
		require.NoError(t, s.AppendSubRecord(ctx, id, models.Prescriptions, p))
	}
	require.NoError(t, s.RemoveSubRecord(ctx, id, models.Prescriptions, models.KeyOf("timestamp", "t2")))

	acc, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, acc.Patient.Prescriptions, 2)
	assert.Equal(t, "t1", acc.Patient.Prescriptions[0].Timestamp)
	assert.Equal(t, "t3", acc.Patient.Prescriptions[1].Timestamp)

	err = s.RemoveSubRecord(ctx, id, models.Prescriptions, models.KeyOf("timestamp", "t2"))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	err = s.RemoveSubRecord(ctx, id, models.Prescriptions, models.KeyOf("visitTime", "t1"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSetFlagsChecksRole(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	doc := mustCreate(t, s, "D", "d@example.com")
	staff := mustCreate(t, s, "S", "s@example.com")

	assert.True(t, apperr.Is(s.SetWorking(ctx, doc, true), apperr.KindValidation))
	assert.True(t, apperr.Is(s.SetAvailability(ctx, staff, true), apperr.KindValidation))

	require.NoError(t, s.SetWorking(ctx, staff, true))
	acc, err := s.GetByID(ctx, staff)
	require.NoError(t, err)
	assert.True(t, acc.Staff.IsWorking)
}

func TestReleaseShiftOnlyTouchesThatShift(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	morning := mustCreate(t, s, "S", "m@example.com")

	r := registration("S", "e@example.com")
	r.Shift = "Evening"
	evening, _, err := s.Create(ctx, r)
	require.NoError(t, err)

	require.NoError(t, s.SetWorking(ctx, morning, true))
	require.NoError(t, s.SetWorking(ctx, evening, true))

	released, err := s.ReleaseShift(ctx, models.ShiftMorning)
	require.NoError(t, err)
	assert.Equal(t, []string{morning}, released)

	again, err := s.ReleaseShift(ctx, models.ShiftMorning)
	require.NoError(t, err)
	assert.Empty(t, again)

	m, _ := s.GetByID(ctx, morning)
	e, _ := s.GetByID(ctx, evening)
	assert.False(t, m.Staff.IsWorking)
	assert.True(t, e.Staff.IsWorking)
}

type failingUsers struct {
	Users
	err error
}

func (f failingUsers) Push(context.Context, primitive.ObjectID, string, models.NaturalKey, interface{}) error {
	return f.err
}

func TestAppendSubRecordWriteFailure(t *testing.T) {
	mem := NewMemoryUsers()
	seed := NewUserStore(mem, prefixHasher{})
	id := mustCreate(t, seed, "D", "d@example.com")

	s := NewUserStore(failingUsers{Users: mem, err: errors.New("connection reset")}, prefixHasher{})
	err := s.AppendSubRecord(context.Background(), id, models.DoctorVisits,
		&models.DoctorVisit{VisitTime: "09:00", PatientName: "Bob", PatientRoomNumber: "3"})
	assert.True(t, apperr.Is(err, apperr.KindWrite))
}
