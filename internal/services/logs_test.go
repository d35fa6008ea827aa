package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/storage"
	"go.uber.org/zap"
)

func newLogs() (*LogService, *recordingPublisher) {
	bus := &recordingPublisher{}
	clock := newFakeClock(time.Date(2024, 5, 10, 22, 0, 0, 0, time.UTC))
	return NewLogService(storage.NewMemoryStore(), bus, zap.NewNop(), time.UTC, clock.Now), bus
}

func TestCravingLogs(t *testing.T) {
	svc, bus := newLogs()
	ctx := context.Background()

	if _, err := svc.AddCraving(ctx, "u1", models.CravingLog{Intensity: 11, Trigger: "stress", Outcome: models.OutcomeResisted}); !errors.Is(err, ErrValidation) {
		t.Errorf("intensity out of range: %v", err)
	}
	if _, err := svc.AddCraving(ctx, "u1", models.CravingLog{Intensity: 5, Trigger: "stress", Outcome: "maybe"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad outcome: %v", err)
	}

	entry, err := svc.AddCraving(ctx, "u1", models.CravingLog{Intensity: 7, Trigger: "party", CopingStrategy: "walk", Outcome: models.OutcomeResisted})
	if err != nil {
		t.Fatalf("add craving: %v", err)
	}
	if entry.ID == "" || entry.UserID != "u1" || entry.Timestamp.IsZero() {
		t.Errorf("entry not stamped: %+v", entry)
	}
	list, _ := svc.Cravings(ctx, "u1")
	if len(list) != 1 {
		t.Errorf("expected 1 craving, got %d", len(list))
	}
	if other, _ := svc.Cravings(ctx, "u2"); len(other) != 0 {
		t.Errorf("logs leaked across users: %v", other)
	}
	if !bus.has(events.DataUpdated) {
		t.Error("append should publish data-updated")
	}
}

func TestSleepLogs_RequireTimes(t *testing.T) {
	svc, _ := newLogs()
	ctx := context.Background()

	if _, err := svc.AddSleep(ctx, "u1", models.SleepLog{Bedtime: "23:00"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing wake time: %v", err)
	}
	entry, err := svc.AddSleep(ctx, "u1", models.SleepLog{Bedtime: "23:00", WakeTime: "07:00", SleepQuality: 7})
	if err != nil {
		t.Fatalf("add sleep: %v", err)
	}
	if entry.Date != "2024-05-10" {
		t.Errorf("date should default to today, got %q", entry.Date)
	}
	list, _ := svc.Sleep(ctx, "u1")
	if len(list) != 1 {
		t.Errorf("expected 1 sleep log, got %d", len(list))
	}
}

func TestMoodDistribution(t *testing.T) {
	svc, _ := newLogs()
	ctx := context.Background()
	for _, v := range []int{10, 9, 7, 5, 1} {
		if _, err := svc.AddMood(ctx, "u1", models.MoodEntry{MoodIntensity: v}); err != nil {
			t.Fatalf("add mood %d: %v", v, err)
		}
	}
	if _, err := svc.AddMood(ctx, "u1", models.MoodEntry{MoodIntensity: 0}); !errors.Is(err, ErrValidation) {
		t.Errorf("zero intensity: %v", err)
	}

	entries, _ := svc.Moods(ctx, "u1")
	dist := MoodDistribution(entries)
	want := map[string]int{"excellent": 40, "good": 20, "neutral": 20, "sad": 0, "very sad": 20}
	for _, b := range dist {
		if b.Percentage != want[b.Label] {
			t.Errorf("%s: %d%%, want %d%%", b.Label, b.Percentage, want[b.Label])
		}
	}
	if len(MoodDistribution(nil)) != 5 {
		t.Error("empty distribution should still list all buckets")
	}
}

func TestLogs_PublishOutsideLock(t *testing.T) {
	svc, _ := newLogs()
	pub := &lockCheckingPublisher{watched: []*sync.Mutex{&svc.mu}}
	svc.bus = pub
	ctx := context.Background()

	if _, err := svc.AddCraving(ctx, "u1", models.CravingLog{Intensity: 4, Trigger: "stress", Outcome: models.OutcomeResisted}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddSleep(ctx, "u1", models.SleepLog{Bedtime: "23:00", WakeTime: "07:00"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddMood(ctx, "u1", models.MoodEntry{MoodIntensity: 6}); err != nil {
		t.Fatal(err)
	}
	if got := len(pub.types()); got != 3 {
		t.Errorf("published %d events, want 3", got)
	}
	if pub.held != 0 {
		t.Errorf("%d events published under the log lock", pub.held)
	}
}
