package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the single-letter tag stored on every user document.
type Role string

const (
	RolePatient Role = "P"
	RoleDoctor  Role = "D"
	RoleStaff   Role = "S"
)

// ParseRole accepts the stored letter or the full role name, case insensitive.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "patient":
		return RolePatient, nil
	case "d", "doctor":
		return RoleDoctor, nil
	case "s", "staff":
		return RoleStaff, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor || r == RoleStaff
}

func (r Role) String() string {
	switch r {
	case RolePatient:
		return "Patient"
	case RoleDoctor:
		return "Doctor"
	case RoleStaff:
		return "Staff"
	}
	return string(r)
}

// Shift is the working period a staff member is rostered on.
type Shift string

const (
	ShiftMorning   Shift = "Morning"
	ShiftAfternoon Shift = "Afternoon"
	ShiftEvening   Shift = "Evening"
)

func ParseShift(s string) (Shift, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning":
		return ShiftMorning, nil
	case "afternoon":
		return ShiftAfternoon, nil
	case "evening":
		return ShiftEvening, nil
	}
	return "", fmt.Errorf("unknown shift %q", s)
}

// Document field names used in filters and projections.
const (
	FieldID          = "_id"
	FieldRole        = "role"
	FieldEmail       = "email"
	FieldFullName    = "fullName"
	FieldDepartment  = "department"
	FieldCabinNumber = "cabinNumber"
	FieldIsAvailable = "isAvailable"
	FieldStaffPost   = "staffPost"
	FieldShift       = "shift"
	FieldIsWorking   = "isWorking"
)

// User is the persisted shape of every account. Role specific fields stay
// empty for the other roles; Account is the typed view callers work with.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string             `bson:"fullName" json:"fullName"`
	Address     string             `bson:"address" json:"address"`
	DOB         string             `bson:"DOB" json:"DOB"`
	Gender      string             `bson:"gender" json:"gender"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Role        Role               `bson:"role" json:"role"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`

	// Doctor
	Department            string                 `bson:"department,omitempty" json:"department,omitempty"`
	CabinNumber           string                 `bson:"cabinNumber,omitempty" json:"cabinNumber,omitempty"`
	DaysAvailable         []string               `bson:"daysAvailable,omitempty" json:"daysAvailable,omitempty"`
	MaxAppointmentsPerDay int                    `bson:"maxAppointmentsPerDay,omitempty" json:"maxAppointmentsPerDay,omitempty"`
	IsAvailable           *bool                  `bson:"isAvailable,omitempty" json:"isAvailable,omitempty"`
	ScheduledAppointments []ScheduledAppointment `bson:"scheduledAppointments,omitempty" json:"scheduledAppointments,omitempty"`
	DoctorVisits          []DoctorVisit          `bson:"doctorVisits,omitempty" json:"doctorVisits,omitempty"`
	AllotedStaff          []StaffAllotment       `bson:"allotedStaff,omitempty" json:"allotedStaff,omitempty"`

	// Patient
	MedicalRecord        string                `bson:"medicalRecord,omitempty" json:"medicalRecord,omitempty"`
	UpcomingAppointments []UpcomingAppointment `bson:"upcomingAppointments,omitempty" json:"upcomingAppointments,omitempty"`
	Prescriptions        []Prescription        `bson:"prescriptions,omitempty" json:"prescriptions,omitempty"`

	// Staff
	IDProof        string            `bson:"idProof,omitempty" json:"idProof,omitempty"`
	StaffPost      string            `bson:"staffPost,omitempty" json:"staffPost,omitempty"`
	Shift          Shift             `bson:"shift,omitempty" json:"shift,omitempty"`
	IsWorking      *bool             `bson:"isWorking,omitempty" json:"isWorking,omitempty"`
	StaffVisits    []StaffVisit      `bson:"staffVisits,omitempty" json:"staffVisits,omitempty"`
	AllotedDoctors []DoctorAllotment `bson:"allotedDoctors,omitempty" json:"allotedDoctors,omitempty"`
}

// Registration is the validated-on-create input for a new account. Role and
// Shift are compared in their canonical form, see Canonicalize.
type Registration struct {
	FullName    string `json:"fullName" validate:"required"`
	Address     string `json:"address" validate:"required"`
	DOB         string `json:"DOB" validate:"required,len=10"`
	Gender      string `json:"gender" validate:"required,len=1"`
	PhoneNumber string `json:"phoneNumber" validate:"required,number"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"required,role"`

	Department            string   `json:"department"`
	CabinNumber           string   `json:"cabinNumber"`
	DaysAvailable         []string `json:"daysAvailable"`
	MaxAppointmentsPerDay int      `json:"maxAppointmentsPerDay" validate:"gte=0"`

	MedicalRecord string `json:"medicalRecord"`

	IDProof   string `json:"idProof"`
	StaffPost string `json:"staffPost"`
	Shift     string `json:"shift" validate:"required_if=Role S,shift"`
}

// Canonicalize trims the free-text fields, lower-cases the email and
// rewrites a recognised role or shift to its stored form.
func (r *Registration) Canonicalize() {
	for _, f := range []*string{&r.FullName, &r.Address, &r.DOB, &r.Gender, &r.PhoneNumber, &r.Role, &r.Shift} {
		*f = strings.TrimSpace(*f)
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if role, err := ParseRole(r.Role); err == nil {
		r.Role = string(role)
	}
	if shift, err := ParseShift(r.Shift); err == nil {
		r.Shift = string(shift)
	}
}

// Identity is what a successful login asserts about the caller.
type Identity struct {
	ID            string `json:"id"`
	Role          Role   `json:"role"`
	FullName      string `json:"name"`
	MedicalRecord string `json:"medicalRecord,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

func boolValue(b *bool) bool { return b != nil && *b }
