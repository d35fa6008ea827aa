package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionMinutes     = 60
	defaultSessionType = "video"
)

var sessionTypes = map[string]bool{"video": true, "audio": true, "chat": true, "in-person": true}

// BookingInput is a patient's booking request.
type BookingInput struct {
	TherapistID string `json:"therapistId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	SessionType string `json:"sessionType"`
}

// BookingService creates and confirms appointments in the bookings collection.
type BookingService struct {
	store storage.Store
	dir   *LifecycleService
	bus   events.Publisher
	log   *zap.Logger
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

func NewBookingService(store storage.Store, dir *LifecycleService, bus events.Publisher, log *zap.Logger, now func() time.Time) *BookingService {
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		store: store,
		dir:   dir,
		bus:   bus,
		log:   log.Named("booking"),
		now:   now,
		newID: uuid.NewString,
	}
}

func (s *BookingService) load(ctx context.Context) ([]models.Appointment, error) {
	var list []models.Appointment
	_, err := storage.LoadJSON(ctx, s.store, storage.KeyBookings, &list)
	if errors.Is(err, storage.ErrCorrupt) {
		s.log.Warn("corrupt bookings, treating as empty", zap.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) save(ctx context.Context, list []models.Appointment) error {
	if list == nil {
		list = []models.Appointment{}
	}
	if err := storage.SaveJSON(ctx, s.store, storage.KeyBookings, list); err != nil {
		s.log.Error("save bookings", zap.Error(err))
		return fmt.Errorf("save bookings: %w", err)
	}
	return nil
}

// Create books a session with a bookable therapist at their hourly rate.
// The appointment waits for payment in pending_confirmation.
func (s *BookingService) Create(ctx context.Context, patient models.User, in BookingInput) (models.Appointment, error) {
	in.TherapistID = strings.TrimSpace(in.TherapistID)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if in.TherapistID == "" || in.Date == "" || in.Time == "" {
		return models.Appointment{}, fmt.Errorf("%w: therapist, date and time are required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return models.Appointment{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if in.SessionType == "" {
		in.SessionType = defaultSessionType
	}
	if !sessionTypes[in.SessionType] {
		return models.Appointment{}, fmt.Errorf("%w: unknown session type %q", ErrValidation, in.SessionType)
	}

	therapist, err := s.dir.FindBookable(ctx, in.TherapistID)
	if err != nil {
		return models.Appointment{}, err
	}

	appt := models.Appointment{
		ID:            s.newID(),
		PatientID:     patient.ID,
		PatientName:   patient.Name,
		TherapistID:   therapist.ID,
		TherapistName: therapist.Name,
		Date:          in.Date,
		Time:          in.Time,
		Duration:      sessionMinutes,
		Amount:        therapist.HourlyRate,
		Status:        models.BookingPendingConfirmation,
		SessionType:   in.SessionType,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.appendBooking(ctx, appt); err != nil {
		return models.Appointment{}, err
	}

	s.log.Info("booking created", zap.String("booking_id", appt.ID), zap.String("patient_id", patient.ID), zap.String("therapist_id", therapist.ID))
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, UserID: patient.ID, TherapistID: therapist.ID})
	return appt, nil
}

func (s *BookingService) appendBooking(ctx context.Context, appt models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, append(list, appt))
}

// Pay confirms a pending booking owned by user. Payment is simulated.
func (s *BookingService) Pay(ctx context.Context, user models.User, bookingID string) (models.Appointment, error) {
	appt, changed, err := s.confirm(ctx, user, bookingID)
	if err != nil || !changed {
		return appt, err
	}
	s.log.Info("booking confirmed", zap.String("booking_id", bookingID), zap.Float64("amount", appt.Amount))
	s.bus.Publish(ctx, events.Event{Type: events.DataUpdated, UserID: user.ID, TherapistID: appt.TherapistID})
	s.bus.Publish(ctx, events.Event{Type: events.AnalyticsUpdated, UserID: user.ID})
	return appt, nil
}

// confirm flips the booking to confirmed. changed is false when it already was.
func (s *BookingService) confirm(ctx context.Context, user models.User, bookingID string) (models.Appointment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return models.Appointment{}, false, err
	}
	for i := range list {
		if list[i].ID != bookingID {
			continue
		}
		if list[i].PatientID != user.ID {
			return models.Appointment{}, false, ErrForbidden
		}
		switch list[i].Status {
		case models.BookingConfirmed:
			return list[i], false, nil
		case models.BookingPendingConfirmation:
		default:
			return models.Appointment{}, false, ErrInvalidTransition
		}
		list[i].Status = models.BookingConfirmed
		if err := s.save(ctx, list); err != nil {
			return models.Appointment{}, false, err
		}
		return list[i], true, nil
	}
	return models.Appointment{}, false, ErrNotFound
}

// List returns the bookings visible to user: their own as patient, theirs as
// therapist, or all for admins. Newest first.
func (s *BookingService) List(ctx context.Context, user models.User) ([]models.Appointment, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Appointment, 0, len(list))
	for _, a := range list {
		switch {
		case user.Role == models.RoleAdmin,
			user.Role == models.RolePatient && a.PatientID == user.ID,
			user.Role == models.RoleTherapist && a.TherapistID == user.ID:
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// All returns every booking.
func (s *BookingService) All(ctx context.Context) ([]models.Appointment, error) {
	return s.load(ctx)
}
