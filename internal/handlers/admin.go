package handlers

import (
	"context"
	"net/http"

	"github.com/AnshRaj112/mindcare-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

// ListServices handles GET /api/admin/services?status=.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.lifecycle.ListServices(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"services": list,
		"count":    len(list),
	})
}

type lifecycleFunc func(ctx context.Context, serviceID string) (services.LifecycleResult, error)

// lifecycleAction runs an admin transition on the {id} service. Unknown ids are
// reported as 404 with success false.
func (h *Handler) lifecycleAction(action lifecycleFunc, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := action(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if !res.Applied {
			writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": message,
			"result":  res,
		})
	}
}

// ApproveService handles PUT /api/admin/services/{id}/approve.
func (h *Handler) ApproveService(w http.ResponseWriter, r *http.Request) {
	h.lifecycleAction(h.lifecycle.Approve, "Therapist approved")(w, r)
}

// RejectService handles PUT /api/admin/services/{id}/reject.
func (h *Handler) RejectService(w http.ResponseWriter, r *http.Request) {
	h.lifecycleAction(h.lifecycle.Reject, "Therapist rejected")(w, r)
}

// SuspendService handles PUT /api/admin/services/{id}/suspend.
func (h *Handler) SuspendService(w http.ResponseWriter, r *http.Request) {
	h.lifecycleAction(h.lifecycle.Suspend, "Therapist suspended")(w, r)
}

// ReactivateService handles PUT /api/admin/services/{id}/reactivate.
func (h *Handler) ReactivateService(w http.ResponseWriter, r *http.Request) {
	h.lifecycleAction(h.lifecycle.Reactivate, "Therapist reactivated")(w, r)
}

// DeleteService handles DELETE /api/admin/services/{id}.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	h.lifecycleAction(h.lifecycle.Delete, "Therapist deleted")(w, r)
}

// UpdateTherapist handles PUT /api/admin/therapists/{id}.
func (h *Handler) UpdateTherapist(w http.ResponseWriter, r *http.Request) {
	var req services.ProfileUpdate
	if !decode(w, r, &req) {
		return
	}
	res, err := h.lifecycle.UpdateProfile(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !res.Applied {
		writeError(w, http.StatusNotFound, "Therapist not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Therapist updated",
		"result":  res,
	})
}

// ListTherapists handles GET /api/admin/therapists.
func (h *Handler) ListTherapists(w http.ResponseWriter, r *http.Request) {
	list, err := h.lifecycle.ListTherapists(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"therapists": list,
		"count":      len(list),
	})
}

// ListUsers handles GET /api/admin/users?role=.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.identity.Users(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

// Analytics handles GET /api/admin/analytics.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.analytics.Report(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "analytics": report})
}
