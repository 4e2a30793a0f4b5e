package models

import "fmt"

// Collection names an embedded sub-record list on a user document.
type Collection string

const (
	ScheduledAppointments Collection = "scheduledAppointments"
	DoctorVisits          Collection = "doctorVisits"
	AllotedStaff          Collection = "allotedStaff"
	UpcomingAppointments  Collection = "upcomingAppointments"
	Prescriptions         Collection = "prescriptions"
	StaffVisits           Collection = "staffVisits"
	AllotedDoctors        Collection = "allotedDoctors"
)

type collectionSpec struct {
	owner Role
	key   []string
}

var collections = map[Collection]collectionSpec{
	ScheduledAppointments: {owner: RoleDoctor, key: []string{"appointmentDate", "appointmentTime"}},
	DoctorVisits:          {owner: RoleDoctor, key: []string{"visitTime"}},
	AllotedStaff:          {owner: RoleDoctor, key: []string{"allotmentTime"}},
	UpcomingAppointments:  {owner: RolePatient, key: []string{"requestId"}},
	Prescriptions:         {owner: RolePatient, key: []string{"timestamp"}},
	StaffVisits:           {owner: RoleStaff, key: []string{"visitTime"}},
	AllotedDoctors:        {owner: RoleStaff, key: []string{"allotmentTime"}},
}

// Owner returns the role whose records carry this collection.
func (c Collection) Owner() (Role, bool) {
	spec, ok := collections[c]
	return spec.owner, ok
}

// KeyFields lists the document fields that together identify one entry.
func (c Collection) KeyFields() []string {
	return collections[c].key
}

// NaturalKey identifies one sub-record by field values, never by position.
type NaturalKey map[string]string

// KeyOf builds a single-field natural key.
func KeyOf(field, value string) NaturalKey {
	return NaturalKey{field: value}
}

// CheckKey verifies key names exactly the collection's key fields with
// non-empty values.
func (c Collection) CheckKey(key NaturalKey) error {
	fields := c.KeyFields()
	if len(fields) == 0 {
		return fmt.Errorf("unknown collection %q", c)
	}
	if len(key) != len(fields) {
		return fmt.Errorf("%s entries are keyed by %v", c, fields)
	}
	for _, f := range fields {
		v, ok := key[f]
		if !ok {
			return fmt.Errorf("%s entries are keyed by %v", c, fields)
		}
		if v == "" {
			return fmt.Errorf("key field %s is empty", f)
		}
	}
	return nil
}

// SubRecord is an entry that can be appended to a user's collection.
// Prepare validates required fields and normalises dates and times.
type SubRecord interface {
	Collection() Collection
	NaturalKey() NaturalKey
	Prepare() error
}
