package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
)

func TestBooking_CreateAndPay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.lifecycle.SeedDemoTherapists(ctx)
	patient := models.User{ID: "p1", Name: "Pat", Role: models.RolePatient}

	appt, err := f.bookings.Create(ctx, patient, BookingInput{TherapistID: "2", Date: "2024-02-01", Time: "10:00 AM"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if appt.Status != models.BookingPendingConfirmation || appt.Duration != 60 || appt.Amount != 180 || appt.SessionType != "video" {
		t.Errorf("unexpected appointment %+v", appt)
	}
	if appt.TherapistName != "Dr. Michael Chen" || appt.PatientName != "Pat" {
		t.Errorf("names not filled: %+v", appt)
	}

	other := models.User{ID: "p2", Role: models.RolePatient}
	if _, err := f.bookings.Pay(ctx, other, appt.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("paying someone else's booking: %v", err)
	}
	paid, err := f.bookings.Pay(ctx, patient, appt.ID)
	if err != nil || paid.Status != models.BookingConfirmed {
		t.Fatalf("pay: %+v err=%v", paid, err)
	}
	if _, err := f.bookings.Pay(ctx, patient, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown booking: %v", err)
	}
	if !f.bus.has(events.AnalyticsUpdated) {
		t.Error("payment should publish analytics-updated")
	}
}

func TestBooking_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.lifecycle.SeedDemoTherapists(ctx)
	patient := models.User{ID: "p1", Role: models.RolePatient}

	bad := []BookingInput{
		{Date: "2024-02-01", Time: "10:00"},
		{TherapistID: "1", Date: "tomorrow", Time: "10:00"},
		{TherapistID: "1", Date: "2024-02-01", Time: "10:00", SessionType: "carrier-pigeon"},
	}
	for i, in := range bad {
		if _, err := f.bookings.Create(ctx, patient, in); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
	if _, err := f.bookings.Create(ctx, patient, BookingInput{TherapistID: "99", Date: "2024-02-01", Time: "10:00"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-bookable therapist: %v", err)
	}
}

func TestBooking_ListVisibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.lifecycle.SeedDemoTherapists(ctx)
	p1 := models.User{ID: "p1", Role: models.RolePatient}
	p2 := models.User{ID: "p2", Role: models.RolePatient}
	f.bookings.Create(ctx, p1, BookingInput{TherapistID: "1", Date: "2024-02-01", Time: "9:00"})
	f.bookings.Create(ctx, p2, BookingInput{TherapistID: "2", Date: "2024-02-01", Time: "9:00"})

	tests := []struct {
		user models.User
		want int
	}{
		{p1, 1},
		{models.User{ID: "2", Role: models.RoleTherapist}, 1},
		{models.User{ID: "admin", Role: models.RoleAdmin}, 2},
		{models.User{ID: "3", Role: models.RoleTherapist}, 0},
	}
	for _, tt := range tests {
		list, err := f.bookings.List(ctx, tt.user)
		if err != nil || len(list) != tt.want {
			t.Errorf("%s/%s: got %d bookings (err=%v), want %d", tt.user.Role, tt.user.ID, len(list), err, tt.want)
		}
	}
}

func TestBooking_SuspendedTherapistNotBookable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user, svc := f.registerTherapist(t, "busy@example.com")
	f.lifecycle.Approve(ctx, svc.ID)
	f.lifecycle.Suspend(ctx, svc.ID)

	_, err := f.bookings.Create(ctx, models.User{ID: "p"}, BookingInput{TherapistID: user.ID, Date: "2024-02-01", Time: "9:00"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for suspended therapist, got %v", err)
	}
}
