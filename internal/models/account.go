package models

import "time"

// Common holds the fields every role carries.
type Common struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Address     string    `json:"address"`
	DOB         string    `json:"DOB"`
	Gender      string    `json:"gender"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"-"`
}

type DoctorRecord struct {
	Department            string
	CabinNumber           string
	DaysAvailable         []string
	MaxAppointmentsPerDay int
	IsAvailable           bool
	ScheduledAppointments []ScheduledAppointment
	DoctorVisits          []DoctorVisit
	AllotedStaff          []StaffAllotment
}

type PatientRecord struct {
	MedicalRecord        string
	UpcomingAppointments []UpcomingAppointment
	Prescriptions        []Prescription
}

type StaffRecord struct {
	IDProof        string
	StaffPost      string
	Shift          Shift
	IsWorking      bool
	StaffVisits    []StaffVisit
	AllotedDoctors []DoctorAllotment
}

// Account is the typed view of a User: common fields plus exactly one role
// payload chosen by Role. The password digest never crosses into it.
type Account struct {
	Common
	Doctor  *DoctorRecord
	Patient *PatientRecord
	Staff   *StaffRecord
}

// AccountFromUser translates the stored document into its role variant.
func AccountFromUser(u *User) *Account {
	a := &Account{Common: Common{
		ID:          u.ID.Hex(),
		FullName:    u.FullName,
		Address:     u.Address,
		DOB:         u.DOB,
		Gender:      u.Gender,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}}
	switch u.Role {
	case RoleDoctor:
		a.Doctor = &DoctorRecord{
			Department:            u.Department,
			CabinNumber:           u.CabinNumber,
			DaysAvailable:         u.DaysAvailable,
			MaxAppointmentsPerDay: u.MaxAppointmentsPerDay,
			IsAvailable:           boolValue(u.IsAvailable),
			ScheduledAppointments: nonNil(u.ScheduledAppointments),
			DoctorVisits:          nonNil(u.DoctorVisits),
			AllotedStaff:          nonNil(u.AllotedStaff),
		}
	case RolePatient:
		a.Patient = &PatientRecord{
			MedicalRecord:        u.MedicalRecord,
			UpcomingAppointments: nonNil(u.UpcomingAppointments),
			Prescriptions:        nonNil(u.Prescriptions),
		}
	case RoleStaff:
		a.Staff = &StaffRecord{
			IDProof:        u.IDProof,
			StaffPost:      u.StaffPost,
			Shift:          u.Shift,
			IsWorking:      boolValue(u.IsWorking),
			StaffVisits:    nonNil(u.StaffVisits),
			AllotedDoctors: nonNil(u.AllotedDoctors),
		}
	}
	return a
}

// UserFromRegistration builds the document to persist. Only the fields of
// the registered role are copied; doctors start available, staff start idle.
func UserFromRegistration(r Registration, role Role, digest string, now time.Time) User {
	u := User{
		FullName:    r.FullName,
		Address:     r.Address,
		DOB:         r.DOB,
		Gender:      r.Gender,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Password:    digest,
		Role:        role,
		CreatedAt:   now,
	}
	switch role {
	case RoleDoctor:
		u.Department = r.Department
		u.CabinNumber = r.CabinNumber
		u.DaysAvailable = r.DaysAvailable
		u.MaxAppointmentsPerDay = r.MaxAppointmentsPerDay
		u.IsAvailable = boolPtr(true)
	case RolePatient:
		u.MedicalRecord = r.MedicalRecord
	case RoleStaff:
		u.IDProof = r.IDProof
		u.StaffPost = r.StaffPost
		u.Shift, _ = ParseShift(r.Shift)
		u.IsWorking = boolPtr(false)
	}
	return u
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type DoctorProfile struct {
	Department            string   `json:"department"`
	CabinNumber           string   `json:"cabinNumber"`
	DaysAvailable         []string `json:"daysAvailable"`
	MaxAppointmentsPerDay int      `json:"maxAppointmentsPerDay"`
	IsAvailable           bool     `json:"isAvailable"`
}

type PatientProfile struct {
	MedicalRecord string `json:"medicalRecord"`
}

type StaffProfile struct {
	IDProof   string `json:"idProof"`
	StaffPost string `json:"staffPost"`
	Shift     Shift  `json:"shift"`
	IsWorking bool   `json:"isWorking"`
}

// Profile is the userDetails projection. The embedded pointer of the
// other roles stays nil so their fields are left out of the JSON.
type Profile struct {
	Common
	*DoctorProfile
	*PatientProfile
	*StaffProfile
}

// Profile projects the account to its common fields plus its own role's
// scalar fields. The creation time is not part of the projection.
func (a *Account) Profile() Profile {
	p := Profile{Common: a.Common}
	p.CreatedAt = time.Time{}
	switch {
	case a.Doctor != nil:
		days := a.Doctor.DaysAvailable
		if days == nil {
			days = []string{}
		}
		p.DoctorProfile = &DoctorProfile{
			Department:            a.Doctor.Department,
			CabinNumber:           a.Doctor.CabinNumber,
			DaysAvailable:         days,
			MaxAppointmentsPerDay: a.Doctor.MaxAppointmentsPerDay,
			IsAvailable:           a.Doctor.IsAvailable,
		}
	case a.Patient != nil:
		p.PatientProfile = &PatientProfile{MedicalRecord: a.Patient.MedicalRecord}
	case a.Staff != nil:
		p.StaffProfile = &StaffProfile{
			IDProof:   a.Staff.IDProof,
			StaffPost: a.Staff.StaffPost,
			Shift:     a.Staff.Shift,
			IsWorking: a.Staff.IsWorking,
		}
	}
	return p
}

// DoctorSummary is the doctorsList projection.
type DoctorSummary struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Department  string `json:"department"`
	CabinNumber string `json:"cabinNumber"`
}

// HelperSummary is the availableHelpers projection.
type HelperSummary struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	StaffPost string `json:"staffPost"`
	Shift     Shift  `json:"shift"`
}
