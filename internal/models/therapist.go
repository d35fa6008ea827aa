package models

import "time"

// TherapistService is a therapist's practice profile as submitted for approval.
type TherapistService struct {
	ID                string     `json:"id"`
	TherapistID       string     `json:"therapistId"`
	TherapistName     string     `json:"therapistName"`
	Email             string     `json:"email,omitempty"`
	Qualification     string     `json:"qualification"`
	Specialization    []string   `json:"specialization"`
	Experience        string     `json:"experience"` // e.g. "8 years"
	ChargesPerSession float64    `json:"chargesPerSession"`
	Bio               string     `json:"bio"`
	Languages         []string   `json:"languages"`
	ProfilePicture    string     `json:"profilePicture,omitempty"`
	Status            string     `json:"status"`
	SubmittedAt       time.Time  `json:"submittedAt"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
}

// BookableTherapist is the patient-facing projection of an approved service.
type BookableTherapist struct {
	ID             string   `json:"id"` // therapist user id
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Specialization []string `json:"specialization"`
	Experience     int      `json:"experience"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"reviewCount"`
	HourlyRate     float64  `json:"hourlyRate"`
	Location       string   `json:"location"`
	Avatar         string   `json:"avatar"`
	Verified       bool     `json:"verified"`
	NextAvailable  string   `json:"nextAvailable"`
	Bio            string   `json:"bio"`
	Languages      []string `json:"languages"`
}

// TherapistListing is the admin view of one therapist with a derived display status.
type TherapistListing struct {
	User          User              `json:"user"`
	Service       *TherapistService `json:"service,omitempty"`
	Bookable      bool              `json:"bookable"`
	DisplayStatus string            `json:"displayStatus"` // active, pending, inactive, suspended
}
