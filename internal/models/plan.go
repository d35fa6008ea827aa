package models

import "time"

// Question types. Every catalog question is QuestionText.
const (
	QuestionText   = "text"
	QuestionRating = "rating"
)

type Question struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type Issue struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Module is one of the fixed therapeutic activities.
type Module struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Difficulty  string `json:"difficulty"`
	Sessions    int    `json:"sessions"`
	Route       string `json:"route"`
}

// Severity levels.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

type Recommendation struct {
	ModuleID          string   `json:"moduleId"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Priority          int      `json:"priority"`
	EstimatedDuration string   `json:"estimatedDuration"`
	Benefits          []string `json:"benefits"`
}

type TherapyPlan struct {
	ID              string           `json:"id"`
	Issue           string           `json:"issue"`
	Severity        string           `json:"severity"`
	PlanDuration    int              `json:"planDuration"` // days
	Recommendations []Recommendation `json:"recommendations"`
	StartDate       time.Time        `json:"startDate"`
	Description     string           `json:"description"`
}

// UserProgress is the single progress document per user. Plan acceptance
// and module starts both write it.
type UserProgress struct {
	UserID             string              `json:"userId"`
	CurrentPlan        *TherapyPlan        `json:"currentPlan,omitempty"`
	StartDate          *time.Time          `json:"startDate,omitempty"`
	CompletedTherapies []string            `json:"completedTherapies"`
	DailyCompletions   map[string][]string `json:"dailyCompletions"`
	LastResetDate      string              `json:"lastResetDate,omitempty"`
}

// Assessment is a completed questionnaire handed to plan generation.
type Assessment struct {
	IssueID   string            `json:"issueId"`
	Issue     string            `json:"issue"` // display name, e.g. "Sleep Problems"
	Questions []Question        `json:"questions"`
	Responses map[string]string `json:"responses"`
}
