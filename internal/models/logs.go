package models

import "time"

// Craving outcomes.
const (
	OutcomeResisted = "resisted"
	OutcomeRelapsed = "relapsed"
)

type CravingLog struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Timestamp      time.Time `json:"timestamp"`
	Intensity      int       `json:"intensity"` // 1-10
	Trigger        string    `json:"trigger"`
	CopingStrategy string    `json:"copingStrategy"`
	Outcome        string    `json:"outcome"`
	Notes          string    `json:"notes,omitempty"`
}

type SleepLog struct {
	ID               string   `json:"id"`
	UserID           string   `json:"userId"`
	Date             string   `json:"date"`
	Bedtime          string   `json:"bedtime"`
	WakeTime         string   `json:"wakeTime"`
	SleepQuality     int      `json:"sleepQuality"`
	TimeToFallAsleep int      `json:"timeToFallAsleep"` // minutes
	NightWakings     int      `json:"nightWakings"`
	TotalSleep       float64  `json:"totalSleep"` // hours
	Mood             int      `json:"mood"`
	Factors          []string `json:"factors,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

type MoodEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Date          string    `json:"date"`
	MoodIntensity int       `json:"moodIntensity"` // 1-10
	StressLevel   int       `json:"stressLevel"`
	EnergyLevel   int       `json:"energyLevel"`
	SleepHours    float64   `json:"sleepHours"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
