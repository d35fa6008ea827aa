package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/storage"
	"github.com/AnshRaj112/mindcare-backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogService appends and lists a user's craving, sleep and mood logs.
type LogService struct {
	store storage.Store
	bus   events.Publisher
	log   *zap.Logger
	loc   *time.Location
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

func NewLogService(store storage.Store, bus events.Publisher, log *zap.Logger, loc *time.Location, now func() time.Time) *LogService {
	if now == nil {
		now = time.Now
	}
	return &LogService{
		store: store,
		bus:   bus,
		log:   log.Named("logs"),
		loc:   loc,
		now:   now,
		newID: uuid.NewString,
	}
}

func (s *LogService) loadList(ctx context.Context, key string, dest interface{}) error {
	_, err := storage.LoadJSON(ctx, s.store, key, dest)
	if errors.Is(err, storage.ErrCorrupt) {
		s.log.Warn("corrupt log list, treating as empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	return nil
}

func (s *LogService) appended(ctx context.Context, userID, kind string) {
	s.log.Info("log entry added", zap.String("user_id", userID), zap.String("kind", kind))
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, UserID: userID})
}

// locked runs fn under the service mutex. Events go out after it returns.
func (s *LogService) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func validScale(v int) bool { return v >= 1 && v <= 10 }

func (s *LogService) AddCraving(ctx context.Context, userID string, entry models.CravingLog) (models.CravingLog, error) {
	if !validScale(entry.Intensity) {
		return models.CravingLog{}, fmt.Errorf("%w: intensity must be between 1 and 10", ErrValidation)
	}
	if strings.TrimSpace(entry.Trigger) == "" {
		return models.CravingLog{}, fmt.Errorf("%w: trigger is required", ErrValidation)
	}
	if entry.Outcome != models.OutcomeResisted && entry.Outcome != models.OutcomeRelapsed {
		return models.CravingLog{}, fmt.Errorf("%w: outcome must be resisted or relapsed", ErrValidation)
	}
	entry.ID = s.newID()
	entry.UserID = userID
	entry.Timestamp = s.now().UTC()

	key := storage.UserKey(storage.PrefixCravingLogs, userID)
	err := s.locked(func() error {
		var list []models.CravingLog
		if err := s.loadList(ctx, key, &list); err != nil {
			return err
		}
		if err := storage.SaveJSON(ctx, s.store, key, append(list, entry)); err != nil {
			return fmt.Errorf("save craving log: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.CravingLog{}, err
	}
	s.appended(ctx, userID, "craving")
	return entry, nil
}

func (s *LogService) Cravings(ctx context.Context, userID string) ([]models.CravingLog, error) {
	list := []models.CravingLog{}
	err := s.loadList(ctx, storage.UserKey(storage.PrefixCravingLogs, userID), &list)
	return list, err
}

func (s *LogService) AddSleep(ctx context.Context, userID string, entry models.SleepLog) (models.SleepLog, error) {
	if strings.TrimSpace(entry.Bedtime) == "" || strings.TrimSpace(entry.WakeTime) == "" {
		return models.SleepLog{}, fmt.Errorf("%w: bedtime and wake time are required", ErrValidation)
	}
	if entry.Date == "" {
		entry.Date = utils.DateKey(s.now(), s.loc)
	}
	entry.ID = s.newID()
	entry.UserID = userID

	key := storage.UserKey(storage.PrefixSleepLogs, userID)
	err := s.locked(func() error {
		var list []models.SleepLog
		if err := s.loadList(ctx, key, &list); err != nil {
			return err
		}
		if err := storage.SaveJSON(ctx, s.store, key, append(list, entry)); err != nil {
			return fmt.Errorf("save sleep log: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.SleepLog{}, err
	}
	s.appended(ctx, userID, "sleep")
	return entry, nil
}

func (s *LogService) Sleep(ctx context.Context, userID string) ([]models.SleepLog, error) {
	list := []models.SleepLog{}
	err := s.loadList(ctx, storage.UserKey(storage.PrefixSleepLogs, userID), &list)
	return list, err
}

func (s *LogService) AddMood(ctx context.Context, userID string, entry models.MoodEntry) (models.MoodEntry, error) {
	if !validScale(entry.MoodIntensity) {
		return models.MoodEntry{}, fmt.Errorf("%w: mood intensity must be between 1 and 10", ErrValidation)
	}
	if entry.Date == "" {
		entry.Date = utils.DateKey(s.now(), s.loc)
	}
	entry.ID = s.newID()
	entry.UserID = userID
	entry.CreatedAt = s.now().UTC()

	key := storage.UserKey(storage.PrefixMoodEntries, userID)
	err := s.locked(func() error {
		var list []models.MoodEntry
		if err := s.loadList(ctx, key, &list); err != nil {
			return err
		}
		if err := storage.SaveJSON(ctx, s.store, key, append(list, entry)); err != nil {
			return fmt.Errorf("save mood entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.MoodEntry{}, err
	}
	s.appended(ctx, userID, "mood")
	return entry, nil
}

func (s *LogService) Moods(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	list := []models.MoodEntry{}
	err := s.loadList(ctx, storage.UserKey(storage.PrefixMoodEntries, userID), &list)
	return list, err
}

// MoodBucket is one slice of the mood distribution.
type MoodBucket struct {
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

var moodLabels = []string{"excellent", "good", "neutral", "sad", "very sad"}

func moodLabel(intensity int) string {
	switch {
	case intensity >= 9:
		return "excellent"
	case intensity >= 7:
		return "good"
	case intensity >= 5:
		return "neutral"
	case intensity >= 3:
		return "sad"
	default:
		return "very sad"
	}
}

// MoodDistribution buckets entries by intensity, in fixed label order.
func MoodDistribution(entries []models.MoodEntry) []MoodBucket {
	counts := make(map[string]int, len(moodLabels))
	for _, e := range entries {
		counts[moodLabel(e.MoodIntensity)]++
	}
	out := make([]MoodBucket, 0, len(moodLabels))
	for _, label := range moodLabels {
		b := MoodBucket{Label: label, Count: counts[label]}
		if len(entries) > 0 {
			b.Percentage = int(math.Round(float64(b.Count) / float64(len(entries)) * 100))
		}
		out = append(out, b)
	}
	return out
}
