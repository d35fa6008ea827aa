package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/middleware"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/services"
	"go.uber.org/zap"
)

// Deps are the services the HTTP layer calls into. Uploader is nil when
// Cloudinary is not configured.
type Deps struct {
	Log         *zap.Logger
	Bus         *events.Bus
	Identity    *services.IdentityService
	Lifecycle   *services.LifecycleService
	Assessments *services.AssessmentService
	Progress    *services.ProgressService
	Bookings    *services.BookingService
	Analytics   *services.AnalyticsService
	Logs        *services.LogService
	Uploader    services.Uploader
}

type Handler struct {
	log         *zap.Logger
	bus         *events.Bus
	identity    *services.IdentityService
	lifecycle   *services.LifecycleService
	assessments *services.AssessmentService
	progress    *services.ProgressService
	bookings    *services.BookingService
	analytics   *services.AnalyticsService
	logs        *services.LogService
	uploader    services.Uploader
}

func New(d Deps) *Handler {
	return &Handler{
		log:         d.Log.Named("http"),
		bus:         d.Bus,
		identity:    d.Identity,
		lifecycle:   d.Lifecycle,
		assessments: d.Assessments,
		progress:    d.Progress,
		bookings:    d.Bookings,
		analytics:   d.Analytics,
		logs:        d.Logs,
		uploader:    d.Uploader,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// decode reads a JSON body into dst and answers 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrUnknownIssue),
		errors.Is(err, services.ErrUnknownModule):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrNoActiveAssessment),
		errors.Is(err, services.ErrNoPendingPlan):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail maps a service error to a status. Internal errors are logged and
// reported without detail.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, status, "Internal server error")
		return
	}
	writeError(w, status, err.Error())
}

// currentUser is set by middleware.RequireAuth on every protected route.
func currentUser(r *http.Request) models.User {
	u, _ := middleware.UserFrom(r.Context())
	return u
}
