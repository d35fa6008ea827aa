package models

import "time"

// Roles.
const (
	RolePatient   = "patient"
	RoleTherapist = "therapist"
	RoleAdmin     = "admin"
)

// Account statuses. Patients and admins carry no status.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`

	// Patient
	Age                      int    `json:"age,omitempty"`
	EmergencyContactEmail    string `json:"emergencyContactEmail,omitempty"`
	EmergencyContactRelation string `json:"emergencyContactRelation,omitempty"`

	// Therapist
	Specialization string  `json:"specialization,omitempty"`
	Location       string  `json:"location,omitempty"`
	HourlyRate     float64 `json:"hourlyRate,omitempty"`
	LicenseNumber  string  `json:"licenseNumber,omitempty"`
	Phone          string  `json:"phone,omitempty"`
}

// Credential is the stored password hash for one account, kept apart from
// the user document so listings never carry it.
type Credential struct {
	UserID       string `json:"userId"`
	PasswordHash string `json:"passwordHash"`
}

// Session is an authenticated login.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
