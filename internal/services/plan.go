package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/google/uuid"
)

const (
	defaultRating          = 5.0
	recommendationDuration = "15-30 min"
	mildThreshold          = 3.0
	severeThreshold        = 7.0
	mildPlanDays           = 7
	moderatePlanDays       = 15
	severePlanDays         = 30
)

// PlanGenerator turns a completed assessment into a therapy plan.
type PlanGenerator struct {
	now   func() time.Time
	newID func() string
}

func NewPlanGenerator(now func() time.Time) *PlanGenerator {
	if now == nil {
		now = time.Now
	}
	return &PlanGenerator{now: now, newID: uuid.NewString}
}

// Generate builds the plan. Apart from id and start date the result depends
// only on the issue name and the rating bucket.
func (g *PlanGenerator) Generate(a models.Assessment) models.TherapyPlan {
	severity, days := Classify(AverageRating(a))
	issue := strings.ToLower(a.Issue)

	return models.TherapyPlan{
		ID:              g.newID(),
		Issue:           a.Issue,
		Severity:        severity,
		PlanDuration:    days,
		Recommendations: Recommendations(a.Issue),
		StartDate:       g.now().UTC(),
		Description:     fmt.Sprintf("A %d-day personalized therapy plan for %s", days, issue),
	}
}

// AverageRating is the mean answer over rating-typed questions. Missing or
// non-numeric answers count as 5, and so does an assessment with no rating
// questions at all (every catalog question is free text).
func AverageRating(a models.Assessment) float64 {
	var sum float64
	var n int
	for _, q := range a.Questions {
		if q.Type != models.QuestionRating {
			continue
		}
		n++
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Responses[q.ID]), 64)
		if err != nil || v == 0 {
			v = defaultRating
		}
		sum += v
	}
	if n == 0 {
		return defaultRating
	}
	return sum / float64(n)
}

// Classify maps an average rating to severity and plan length in days.
func Classify(avg float64) (string, int) {
	switch {
	case avg <= mildThreshold:
		return models.SeverityMild, mildPlanDays
	case avg >= severeThreshold:
		return models.SeveritySevere, severePlanDays
	default:
		return models.SeverityModerate, moderatePlanDays
	}
}

// Recommendations expands the module list for an issue into ranked records.
func Recommendations(issueName string) []models.Recommendation {
	issue := strings.ToLower(strings.TrimSpace(issueName))
	ids := RecommendedModules(issueName)
	out := make([]models.Recommendation, 0, len(ids))
	for i, id := range ids {
		m, _ := FindModule(id)
		out = append(out, models.Recommendation{
			ModuleID:          id,
			Title:             m.Title,
			Description:       fmt.Sprintf("Evidence-based %s for %s", strings.ToLower(m.Title), issue),
			Priority:          i + 1,
			EstimatedDuration: recommendationDuration,
			Benefits:          []string{"Reduces " + issue, "Improves coping skills", "Builds resilience"},
		})
	}
	return out
}
