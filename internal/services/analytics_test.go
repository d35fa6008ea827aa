package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildReport(t *testing.T) {
	users := []models.User{
		{ID: "p1", Role: models.RolePatient},
		{ID: "p2", Role: models.RolePatient},
		{ID: "t1", Role: models.RoleTherapist},
		{ID: "a", Role: models.RoleAdmin},
	}
	services := []models.TherapistService{
		{Status: models.StatusApproved},
		{Status: models.StatusPending},
		{Status: models.StatusPending},
		{Status: models.StatusRejected},
	}
	bookings := []models.Appointment{
		{TherapistID: "t1", TherapistName: "One", Amount: 100, Status: models.BookingCompleted},
		{TherapistID: "t1", TherapistName: "One", Amount: 100, Status: models.BookingCompleted},
		{TherapistID: "t2", TherapistName: "Two", Amount: 80, Status: models.BookingCompleted},
		{TherapistID: "t2", TherapistName: "Two", Amount: 80, Status: models.BookingConfirmed},
		{TherapistID: "t3", TherapistName: "Three", Amount: 50, Status: models.BookingPendingConfirmation},
	}

	r := BuildReport(users, services, bookings)
	if r.TotalUsers != 4 || r.UsersByRole[models.RolePatient] != 2 || r.UsersByRole[models.RoleAdmin] != 1 {
		t.Errorf("user counts: %+v", r.UsersByRole)
	}
	if r.ApprovedTherapists != 1 || r.PendingTherapists != 2 {
		t.Errorf("therapist counts: approved=%d pending=%d", r.ApprovedTherapists, r.PendingTherapists)
	}
	if r.TotalBookings != 5 || r.BookingsByStatus[models.BookingCompleted] != 3 {
		t.Errorf("booking counts: %+v", r.BookingsByStatus)
	}
	if r.Revenue != 360 {
		t.Errorf("expected revenue 360, got %v", r.Revenue)
	}
	if len(r.TopTherapists) != 2 || r.TopTherapists[0].TherapistID != "t1" || r.TopTherapists[0].Sessions != 2 || r.TopTherapists[0].Revenue != 200 {
		t.Errorf("top therapists: %+v", r.TopTherapists)
	}
	if r.TopTherapists[1].Revenue != 80 {
		t.Errorf("top list revenue counts completed only: %+v", r.TopTherapists[1])
	}
}

func TestAnalyticsService_Report(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, svc := f.registerTherapist(t, "stat@example.com")
	f.lifecycle.Approve(ctx, svc.ID)

	a := NewAnalyticsService(f.lifecycle, f.bookings, f.lifecycle.log)
	r, err := a.Report(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if r.ApprovedTherapists != 1 || r.UsersByRole[models.RoleTherapist] != 1 || len(r.TopTherapists) != 0 {
		t.Errorf("unexpected report %+v", r)
	}
}

// failingStore fails reads of one key.
type failingStore struct {
	storage.Store
	key string
}

func (s failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == s.key {
		return nil, errors.New("connection reset")
	}
	return s.Store.Get(ctx, key)
}

func TestAnalyticsService_ReportLogsFailure(t *testing.T) {
	store := failingStore{Store: storage.NewMemoryStore(), key: storage.KeyBookings}
	clock := newFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	lc := NewLifecycleService(store, &recordingPublisher{}, zap.NewNop(), clock.Now)
	bk := NewBookingService(store, lc, &recordingPublisher{}, zap.NewNop(), clock.Now)

	core, logs := observer.New(zap.ErrorLevel)
	a := NewAnalyticsService(lc, bk, zap.New(core))
	if _, err := a.Report(context.Background()); err == nil {
		t.Fatal("report should fail when bookings cannot be read")
	}
	entries := logs.FilterMessage("load bookings for report").All()
	if len(entries) != 1 {
		t.Fatalf("got %d error logs, want 1", len(entries))
	}
	if entries[0].LoggerName != "analytics" {
		t.Errorf("logger name = %q", entries[0].LoggerName)
	}
}
