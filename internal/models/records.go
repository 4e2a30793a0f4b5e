package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notice categories: G is the general board, the role letters are the
// role specific boards.
const NoticeGeneral = "G"

type Notice struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category string             `bson:"category" json:"category"`
	PostedBy string             `bson:"postedBy" json:"postedBy"`
	Date     string             `bson:"date" json:"date"`
	Heading  string             `bson:"heading" json:"heading" validate:"required"`
	Content  string             `bson:"content" json:"content" validate:"required"`
}

type AppointmentRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID   string             `bson:"patientID" json:"patientID"`
	PatientName string             `bson:"patientName" json:"patientName"`
	Problem     string             `bson:"problem" json:"problem"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type Room struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomCategory string             `bson:"roomCategory" json:"roomCategory"`
	OccupiedBeds int                `bson:"occupiedBeds" json:"occupiedBeds"`
	VacantBeds   int                `bson:"vacantBeds" json:"vacantBeds"`
}

type LeaveRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StaffID    string             `bson:"staffID" json:"staffID"`
	StaffName  string             `bson:"staffName" json:"staffName"`
	LeaveDates string             `bson:"leaveDates" json:"leaveDates"`
	Status     bool               `bson:"status" json:"status"`
}
