package models

import "time"

// Appointment statuses.
const (
	BookingPendingConfirmation = "pending_confirmation"
	BookingConfirmed           = "confirmed"
	BookingCompleted           = "completed"
	BookingCancelled           = "cancelled"
)

type Appointment struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patientId"`
	PatientName   string    `json:"patientName"`
	TherapistID   string    `json:"therapistId"`
	TherapistName string    `json:"therapistName"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Duration      int       `json:"duration"` // minutes
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	SessionType   string    `json:"sessionType"`
	CreatedAt     time.Time `json:"createdAt"`
}
