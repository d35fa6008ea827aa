package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/storage"
	"github.com/AnshRaj112/mindcare-backend/pkg/utils"
	"go.uber.org/zap"
)

// ProgressOptions configures the progress tracker.
type ProgressOptions struct {
	Location *time.Location
	Now      func() time.Time
	// ResetOnAccept clears completion history when a new plan is accepted.
	ResetOnAccept bool
}

// ProgressService persists accepted plans and module completions, one
// document per user.
type ProgressService struct {
	store storage.Store
	bus   events.Publisher
	log   *zap.Logger
	loc   *time.Location
	now   func() time.Time
	reset bool

	mu sync.Mutex
}

func NewProgressService(store storage.Store, bus events.Publisher, log *zap.Logger, opts ProgressOptions) *ProgressService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &ProgressService{
		store: store,
		bus:   bus,
		log:   log.Named("progress"),
		loc:   opts.Location,
		now:   opts.Now,
		reset: opts.ResetOnAccept,
	}
}

// Today is the current calendar-day key.
func (s *ProgressService) Today() string {
	return utils.DateKey(s.now(), s.loc)
}

// load returns the user's document. Missing and corrupt documents both come
// back as empty progress.
func (s *ProgressService) load(ctx context.Context, userID string) (models.UserProgress, error) {
	var p models.UserProgress
	_, err := storage.LoadJSON(ctx, s.store, storage.UserKey(storage.PrefixUserProgress, userID), &p)
	if errors.Is(err, storage.ErrCorrupt) {
		s.log.Warn("corrupt progress document, starting empty", zap.String("user_id", userID), zap.Error(err))
		p = models.UserProgress{}
		err = nil
	}
	if err != nil {
		return models.UserProgress{}, fmt.Errorf("load progress: %w", err)
	}
	p.UserID = userID
	if p.CompletedTherapies == nil {
		p.CompletedTherapies = []string{}
	}
	if p.DailyCompletions == nil {
		p.DailyCompletions = make(map[string][]string)
	}
	return p, nil
}

func (s *ProgressService) save(ctx context.Context, p models.UserProgress) error {
	key := storage.UserKey(storage.PrefixUserProgress, p.UserID)
	if err := storage.SaveJSON(ctx, s.store, key, p); err != nil {
		s.log.Error("save progress", zap.String("user_id", p.UserID), zap.Error(err))
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *ProgressService) Get(ctx context.Context, userID string) (models.UserProgress, error) {
	return s.load(ctx, userID)
}

// AcceptPlan makes plan the user's current plan. With ResetOnAccept the
// document is replaced outright, dropping earlier completions.
func (s *ProgressService) AcceptPlan(ctx context.Context, userID string, plan models.TherapyPlan) (models.UserProgress, error) {
	p, err := s.acceptPlan(ctx, userID, plan)
	if err != nil {
		return models.UserProgress{}, err
	}
	s.log.Info("plan accepted",
		zap.String("user_id", userID),
		zap.String("plan_id", plan.ID),
		zap.Bool("reset", s.reset),
	)
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, UserID: userID})
	return p, nil
}

func (s *ProgressService) acceptPlan(ctx context.Context, userID string, plan models.TherapyPlan) (models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	var p models.UserProgress
	if s.reset {
		p = models.UserProgress{
			UserID:             userID,
			CompletedTherapies: []string{},
			DailyCompletions:   make(map[string][]string),
		}
	} else {
		var err error
		if p, err = s.load(ctx, userID); err != nil {
			return models.UserProgress{}, err
		}
	}
	p.CurrentPlan = &plan
	p.StartDate = &now

	if err := s.save(ctx, p); err != nil {
		return models.UserProgress{}, err
	}
	return p, nil
}

// StartModule records one completion of moduleID for today. Duplicates are
// kept. A day rollover clears today's bucket before the append; earlier
// days and the lifetime list are left alone.
func (s *ProgressService) StartModule(ctx context.Context, userID, moduleID string) (models.UserProgress, error) {
	if _, ok := FindModule(moduleID); !ok {
		return models.UserProgress{}, ErrUnknownModule
	}

	p, today, err := s.startModule(ctx, userID, moduleID)
	if err != nil {
		return models.UserProgress{}, err
	}
	s.log.Info("module started", zap.String("user_id", userID), zap.String("module", moduleID), zap.String("day", today))
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, UserID: userID})
	s.bus.Publish(ctx, events.Event{Type: events.AnalyticsUpdated, UserID: userID})
	return p, nil
}

func (s *ProgressService) startModule(ctx context.Context, userID, moduleID string) (models.UserProgress, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx, userID)
	if err != nil {
		return models.UserProgress{}, "", err
	}

	today := s.Today()
	if p.LastResetDate != today {
		p.DailyCompletions[today] = []string{}
		p.LastResetDate = today
	}
	p.CompletedTherapies = append(p.CompletedTherapies, moduleID)
	p.DailyCompletions[today] = append(p.DailyCompletions[today], moduleID)

	if err := s.save(ctx, p); err != nil {
		return models.UserProgress{}, "", err
	}
	return p, today, nil
}

func (s *ProgressService) CompletedToday(ctx context.Context, userID string) ([]string, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return CompletedOn(p, s.Today()), nil
}

func (s *ProgressService) TotalCompleted(ctx context.Context, userID string) (int, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(p.CompletedTherapies), nil
}

// PlanProgress counts completions against the current plan's recommendations.
type PlanProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type ModuleProgress struct {
	ModuleID  string `json:"moduleId"`
	Title     string `json:"title"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Progress  int    `json:"progress"`
}

type ProgressSummary struct {
	Progress       models.UserProgress `json:"progress"`
	CompletedToday []string            `json:"completedToday"`
	TotalCompleted int                 `json:"totalCompleted"`
	Plan           PlanProgress        `json:"plan"`
	Modules        []ModuleProgress    `json:"modules"`
	Streak         int                 `json:"streak"`
}

func (s *ProgressService) Summary(ctx context.Context, userID string) (ProgressSummary, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return ProgressSummary{}, err
	}
	today := s.Today()
	return ProgressSummary{
		Progress:       p,
		CompletedToday: CompletedOn(p, today),
		TotalCompleted: len(p.CompletedTherapies),
		Plan:           PlanProgressOf(p),
		Modules:        ModuleProgressOf(p),
		Streak:         Streak(p, today),
	}, nil
}

// CompletedOn returns the bucket for day, or an empty list.
func CompletedOn(p models.UserProgress, day string) []string {
	done := p.DailyCompletions[day]
	out := make([]string, len(done))
	copy(out, done)
	return out
}

// PlanProgressOf is zero without a current plan. Percentage is capped at 100.
func PlanProgressOf(p models.UserProgress) PlanProgress {
	if p.CurrentPlan == nil {
		return PlanProgress{}
	}
	total := len(p.CurrentPlan.Recommendations)
	completed := len(p.CompletedTherapies)
	return PlanProgress{Completed: completed, Total: total, Percentage: percent(completed, total)}
}

// ModuleProgressOf reports per-module completions against each module's session count.
func ModuleProgressOf(p models.UserProgress) []ModuleProgress {
	counts := make(map[string]int)
	for _, id := range p.CompletedTherapies {
		counts[id]++
	}
	out := make([]ModuleProgress, 0, len(modules))
	for _, m := range modules {
		done := counts[m.ID]
		if done > m.Sessions {
			done = m.Sessions
		}
		out = append(out, ModuleProgress{
			ModuleID:  m.ID,
			Title:     m.Title,
			Completed: done,
			Total:     m.Sessions,
			Progress:  percent(done, m.Sessions),
		})
	}
	return out
}

// Streak counts consecutive days with at least one completion, ending today,
// or yesterday when nothing has been done yet today.
func Streak(p models.UserProgress, today string) int {
	day := today
	if len(p.DailyCompletions[day]) == 0 {
		day = utils.PreviousDay(day)
	}
	n := 0
	for day != "" && len(p.DailyCompletions[day]) > 0 {
		n++
		day = utils.PreviousDay(day)
	}
	return n
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	v := int(math.Round(float64(part) / float64(total) * 100))
	if v > 100 {
		return 100
	}
	return v
}
