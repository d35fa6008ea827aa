package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Progress handles GET /api/progress.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	summary, err := h.progress.Summary(r.Context(), currentUser(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "summary": summary})
}

// StartModule handles POST /api/progress/modules/{moduleId}/start.
func (h *Handler) StartModule(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progress.StartModule(r.Context(), currentUser(r).ID, chi.URLParam(r, "moduleId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "progress": progress})
}
