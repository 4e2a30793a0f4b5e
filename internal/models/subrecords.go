package models

// Placeholders written into an upcoming appointment until a doctor picks it up.
const (
	StatusPending      = "Pending"
	PendingDate        = "PPPPPPPPPP"
	PendingTime        = "PPPPP"
	PendingDoctorField = "Pending"
)

// ScheduledAppointment is an entry on a doctor's agenda.
type ScheduledAppointment struct {
	AppointmentDate string `bson:"appointmentDate" json:"appointmentDate" validate:"required,datetime=02/01/2006"`
	AppointmentTime string `bson:"appointmentTime" json:"appointmentTime" validate:"required,len=5,datetime=15:04"`
	PatientID       string `bson:"patientID" json:"patientID" validate:"required"`
	PatientName     string `bson:"patientName" json:"patientName" validate:"required"`
	Problem         string `bson:"problem" json:"problem"`
	IsReferred      bool   `bson:"isReferred" json:"isReferred"`
	ReferredBy      string `bson:"referredBy,omitempty" json:"referredBy,omitempty" validate:"required_if=IsReferred true"`
}

func (a *ScheduledAppointment) Collection() Collection { return ScheduledAppointments }

func (a *ScheduledAppointment) NaturalKey() NaturalKey {
	return NaturalKey{"appointmentDate": a.AppointmentDate, "appointmentTime": a.AppointmentTime}
}

func (a *ScheduledAppointment) Prepare() error {
	if a.AppointmentDate != "" {
		date, err := NormalizeDate(a.AppointmentDate)
		if err != nil {
			return err
		}
		a.AppointmentDate = date
	}
	return Validate(a)
}

// DoctorVisit is a ward round a doctor has to make.
type DoctorVisit struct {
	VisitTime         string `bson:"visitTime" json:"visitTime" validate:"required,len=5,datetime=15:04"`
	PatientID         string `bson:"patientID" json:"patientID"`
	PatientName       string `bson:"patientName" json:"patientName" validate:"required"`
	PatientRoomNumber string `bson:"patientRoomNumber" json:"patientRoomNumber" validate:"required"`
}

func (v *DoctorVisit) Collection() Collection { return DoctorVisits }

func (v *DoctorVisit) NaturalKey() NaturalKey { return KeyOf("visitTime", v.VisitTime) }

func (v *DoctorVisit) Prepare() error { return Validate(v) }

// StaffAllotment records a helper assigned to a doctor.
type StaffAllotment struct {
	AllotmentTime string `bson:"allotmentTime" json:"allotmentTime" validate:"required,len=5,datetime=15:04"`
	StaffID       string `bson:"staffID" json:"staffID"`
	StaffName     string `bson:"staffName" json:"staffName" validate:"required"`
	StaffPost     string `bson:"staffPost" json:"staffPost"`
	Task          string `bson:"task" json:"task" validate:"required"`
}

func (s *StaffAllotment) Collection() Collection { return AllotedStaff }

func (s *StaffAllotment) NaturalKey() NaturalKey { return KeyOf("allotmentTime", s.AllotmentTime) }

func (s *StaffAllotment) Prepare() error { return Validate(s) }

// UpcomingAppointment is a patient's view of a requested or booked visit.
type UpcomingAppointment struct {
	RequestID         string `bson:"requestId" json:"requestId" validate:"required"`
	AppointmentStatus string `bson:"appointmentStatus" json:"appointmentStatus" validate:"required"`
	AppointmentDate   string `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime   string `bson:"appointmentTime" json:"appointmentTime"`
	DoctorID          string `bson:"doctorID" json:"doctorID"`
	DoctorName        string `bson:"doctorName" json:"doctorName"`
	DoctorDepartment  string `bson:"doctorDepartment" json:"doctorDepartment"`
	DoctorCabinNumber string `bson:"doctorCabinNumber" json:"doctorCabinNumber"`
	Problem           string `bson:"problem" json:"problem" validate:"required"`
}

// PendingAppointment is the placeholder entry appended when a request is filed.
func PendingAppointment(requestID, problem string) *UpcomingAppointment {
	return &UpcomingAppointment{
		RequestID:         requestID,
		AppointmentStatus: StatusPending,
		AppointmentDate:   PendingDate,
		AppointmentTime:   PendingTime,
		DoctorID:          PendingDoctorField,
		DoctorName:        PendingDoctorField,
		DoctorDepartment:  PendingDoctorField,
		DoctorCabinNumber: PendingDoctorField,
		Problem:           problem,
	}
}

func (u *UpcomingAppointment) Collection() Collection { return UpcomingAppointments }

func (u *UpcomingAppointment) NaturalKey() NaturalKey { return KeyOf("requestId", u.RequestID) }

// Prepare leaves the placeholder date and time of a pending entry alone.
func (u *UpcomingAppointment) Prepare() error {
	if err := Validate(u); err != nil {
		return err
	}
	if u.AppointmentStatus == StatusPending {
		return nil
	}
	date, err := NormalizeDate(u.AppointmentDate)
	if err != nil {
		return err
	}
	u.AppointmentDate = date
	return CheckTime(u.AppointmentTime)
}

// Medicine is one line of a prescription.
type Medicine struct {
	MedicineName      string `bson:"medicineName" json:"medicineName" validate:"required"`
	DosageInstruction string `bson:"dosageInstruction" json:"dosageInstruction"`
}

// Prescription is written by a doctor onto a patient's record.
type Prescription struct {
	Timestamp      string     `bson:"timestamp" json:"timestamp" validate:"required"`
	DoctorName     string     `bson:"doctorName" json:"doctorName" validate:"required"`
	Medicines      []Medicine `bson:"medicines" json:"medicines" validate:"required,min=1,dive"`
	GeneralComment string     `bson:"generalComment,omitempty" json:"generalComment,omitempty"`
}

func (p *Prescription) Collection() Collection { return Prescriptions }

func (p *Prescription) NaturalKey() NaturalKey { return KeyOf("timestamp", p.Timestamp) }

func (p *Prescription) Prepare() error { return Validate(p) }

// StaffVisit is a task a staff member has to carry out in a patient's room.
type StaffVisit struct {
	VisitTime         string `bson:"visitTime" json:"visitTime" validate:"required,len=5,datetime=15:04"`
	PatientName       string `bson:"patientName" json:"patientName" validate:"required"`
	PatientRoomNumber string `bson:"patientRoomNumber" json:"patientRoomNumber" validate:"required"`
	Instructions      string `bson:"instructions" json:"instructions"`
}

func (v *StaffVisit) Collection() Collection { return StaffVisits }

func (v *StaffVisit) NaturalKey() NaturalKey { return KeyOf("visitTime", v.VisitTime) }

func (v *StaffVisit) Prepare() error { return Validate(v) }

// DoctorAllotment is the staff side of a helper assignment.
type DoctorAllotment struct {
	AllotmentTime string `bson:"allotmentTime" json:"allotmentTime" validate:"required,len=5,datetime=15:04"`
	DoctorID      string `bson:"doctorID" json:"doctorID"`
	DoctorName    string `bson:"doctorName" json:"doctorName" validate:"required"`
	CabinNumber   string `bson:"cabinNumber" json:"cabinNumber"`
	Task          string `bson:"task" json:"task" validate:"required"`
}

func (d *DoctorAllotment) Collection() Collection { return AllotedDoctors }

func (d *DoctorAllotment) NaturalKey() NaturalKey { return KeyOf("allotmentTime", d.AllotmentTime) }

func (d *DoctorAllotment) Prepare() error { return Validate(d) }
