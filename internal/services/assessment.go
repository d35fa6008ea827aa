package services

import (
	"sync"

	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"go.uber.org/zap"
)

// Assessment walks one issue's questions strictly in order. The cursor stays
// within [0, len(questions)-1]; answering the last question completes it.
type Assessment struct {
	issue     models.Issue
	cursor    int
	responses map[string]string
	completed bool
}

// StartAssessment positions a fresh assessment at the first question.
func StartAssessment(issueID string) (*Assessment, error) {
	issue, ok := FindIssue(issueID)
	if !ok {
		return nil, ErrUnknownIssue
	}
	return &Assessment{issue: issue, responses: make(map[string]string)}, nil
}

func (a *Assessment) Issue() models.Issue { return a.issue }
func (a *Assessment) Cursor() int         { return a.cursor }
func (a *Assessment) Len() int            { return len(a.issue.Questions) }
func (a *Assessment) Completed() bool     { return a.completed }

// Current is the question under the cursor.
func (a *Assessment) Current() models.Question {
	return a.issue.Questions[a.cursor]
}

// Answer stores text under the current question. It advances the cursor,
// or on the last question marks the assessment completed and returns true.
// Required flags are not enforced here.
func (a *Assessment) Answer(text string) bool {
	if a.completed {
		return true
	}
	a.responses[a.Current().ID] = text
	if a.cursor < len(a.issue.Questions)-1 {
		a.cursor++
		return false
	}
	a.completed = true
	return true
}

// Previous steps back one question and returns the text previously entered
// there, if any. At the first question it is a no-op.
func (a *Assessment) Previous() string {
	if a.cursor > 0 && !a.completed {
		a.cursor--
	}
	return a.responses[a.Current().ID]
}

// Result snapshots the collected responses.
func (a *Assessment) Result() models.Assessment {
	responses := make(map[string]string, len(a.responses))
	for k, v := range a.responses {
		responses[k] = v
	}
	return models.Assessment{
		IssueID:   a.issue.ID,
		Issue:     a.issue.Name,
		Questions: a.issue.Questions,
		Responses: responses,
	}
}

// AssessmentView is what clients see of an in-progress assessment.
type AssessmentView struct {
	IssueID        string          `json:"issueId"`
	IssueName      string          `json:"issueName"`
	Index          int             `json:"index"`
	Total          int             `json:"total"`
	Question       models.Question `json:"question"`
	PreviousAnswer string          `json:"previousAnswer,omitempty"`
}

func (a *Assessment) view() AssessmentView {
	q := a.Current()
	return AssessmentView{
		IssueID:        a.issue.ID,
		IssueName:      a.issue.Name,
		Index:          a.cursor,
		Total:          len(a.issue.Questions),
		Question:       q,
		PreviousAnswer: a.responses[q.ID],
	}
}

// AssessmentService keeps one active assessment and at most one generated,
// not yet accepted plan per user, in process memory.
type AssessmentService struct {
	log       *zap.Logger
	generator *PlanGenerator

	mu      sync.Mutex
	active  map[string]*Assessment
	pending map[string]models.TherapyPlan
}

func NewAssessmentService(log *zap.Logger, generator *PlanGenerator) *AssessmentService {
	return &AssessmentService{
		log:       log.Named("assessment"),
		generator: generator,
		active:    make(map[string]*Assessment),
		pending:   make(map[string]models.TherapyPlan),
	}
}

// Start replaces any assessment the user had in progress.
func (s *AssessmentService) Start(userID, issueID string) (AssessmentView, error) {
	a, err := StartAssessment(issueID)
	if err != nil {
		return AssessmentView{}, err
	}
	s.mu.Lock()
	s.active[userID] = a
	s.mu.Unlock()

	s.log.Info("assessment started", zap.String("user_id", userID), zap.String("issue", issueID))
	return a.view(), nil
}

func (s *AssessmentService) Current(userID string) (AssessmentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.active[userID]
	if !ok {
		return AssessmentView{}, ErrNoActiveAssessment
	}
	return a.view(), nil
}

// Answer records text for the current question. When that completes the
// assessment the session is dropped, a plan is generated and held as the
// user's pending plan, and the plan is returned.
func (s *AssessmentService) Answer(userID, text string) (AssessmentView, *models.TherapyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.active[userID]
	if !ok {
		return AssessmentView{}, nil, ErrNoActiveAssessment
	}
	if !a.Answer(text) {
		return a.view(), nil, nil
	}

	delete(s.active, userID)
	plan := s.generator.Generate(a.Result())
	s.pending[userID] = plan

	s.log.Info("plan generated",
		zap.String("user_id", userID),
		zap.String("plan_id", plan.ID),
		zap.String("severity", plan.Severity),
		zap.Int("days", plan.PlanDuration),
	)
	return AssessmentView{}, &plan, nil
}

func (s *AssessmentService) Previous(userID string) (AssessmentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.active[userID]
	if !ok {
		return AssessmentView{}, ErrNoActiveAssessment
	}
	a.Previous()
	return a.view(), nil
}

// Cancel drops an in-progress assessment without generating anything.
func (s *AssessmentService) Cancel(userID string) {
	s.mu.Lock()
	delete(s.active, userID)
	s.mu.Unlock()
}

func (s *AssessmentService) PendingPlan(userID string) (models.TherapyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.pending[userID]
	if !ok {
		return models.TherapyPlan{}, ErrNoPendingPlan
	}
	return plan, nil
}

// DiscardPlan closes the plan without saving anything.
func (s *AssessmentService) DiscardPlan(userID string) {
	s.mu.Lock()
	delete(s.pending, userID)
	s.mu.Unlock()
}
