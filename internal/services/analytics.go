package services

import (
	"context"
	"sort"

	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"go.uber.org/zap"
)

const topTherapistCount = 5

type TherapistStat struct {
	TherapistID string  `json:"therapistId"`
	Name        string  `json:"name"`
	Sessions    int     `json:"sessions"`
	Revenue     float64 `json:"revenue"`
}

type AnalyticsReport struct {
	TotalUsers         int             `json:"totalUsers"`
	UsersByRole        map[string]int  `json:"usersByRole"`
	ApprovedTherapists int             `json:"approvedTherapists"`
	PendingTherapists  int             `json:"pendingTherapists"`
	TotalBookings      int             `json:"totalBookings"`
	BookingsByStatus   map[string]int  `json:"bookingsByStatus"`
	Revenue            float64         `json:"revenue"`
	TopTherapists      []TherapistStat `json:"topTherapists"`
}

// AnalyticsService aggregates the shared collections. It never writes.
type AnalyticsService struct {
	dir      *LifecycleService
	bookings *BookingService
	log      *zap.Logger
}

func NewAnalyticsService(dir *LifecycleService, bookings *BookingService, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{dir: dir, bookings: bookings, log: log.Named("analytics")}
}

func (s *AnalyticsService) Report(ctx context.Context) (AnalyticsReport, error) {
	st, err := s.dir.load(ctx)
	if err != nil {
		s.log.Error("load directory for report", zap.Error(err))
		return AnalyticsReport{}, err
	}
	bookings, err := s.bookings.All(ctx)
	if err != nil {
		s.log.Error("load bookings for report", zap.Error(err))
		return AnalyticsReport{}, err
	}
	return BuildReport(st.users, st.services, bookings), nil
}

// BuildReport counts users, therapist approvals and bookings. Revenue counts
// confirmed and completed bookings; the top list ranks therapists by
// completed sessions.
func BuildReport(users []models.User, services []models.TherapistService, bookings []models.Appointment) AnalyticsReport {
	r := AnalyticsReport{
		TotalUsers:       len(users),
		UsersByRole:      map[string]int{models.RolePatient: 0, models.RoleTherapist: 0, models.RoleAdmin: 0},
		TotalBookings:    len(bookings),
		BookingsByStatus: make(map[string]int),
		TopTherapists:    []TherapistStat{},
	}
	for _, u := range users {
		r.UsersByRole[u.Role]++
	}
	for _, svc := range services {
		switch svc.Status {
		case models.StatusApproved:
			r.ApprovedTherapists++
		case models.StatusPending:
			r.PendingTherapists++
		}
	}

	stats := make(map[string]*TherapistStat)
	for _, b := range bookings {
		r.BookingsByStatus[b.Status]++
		if b.Status == models.BookingConfirmed || b.Status == models.BookingCompleted {
			r.Revenue += b.Amount
		}
		if b.Status != models.BookingCompleted {
			continue
		}
		ts, ok := stats[b.TherapistID]
		if !ok {
			ts = &TherapistStat{TherapistID: b.TherapistID, Name: b.TherapistName}
			stats[b.TherapistID] = ts
		}
		ts.Sessions++
		ts.Revenue += b.Amount
	}

	for _, ts := range stats {
		r.TopTherapists = append(r.TopTherapists, *ts)
	}
	sort.Slice(r.TopTherapists, func(i, j int) bool {
		a, b := r.TopTherapists[i], r.TopTherapists[j]
		if a.Sessions != b.Sessions {
			return a.Sessions > b.Sessions
		}
		return a.TherapistID < b.TherapistID
	})
	if len(r.TopTherapists) > topTherapistCount {
		r.TopTherapists = r.TopTherapists[:topTherapistCount]
	}
	return r
}
