package handlers

import (
	"net/http"

	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/services"
)

// AddCraving handles POST /api/logs/cravings.
func (h *Handler) AddCraving(w http.ResponseWriter, r *http.Request) {
	var req models.CravingLog
	if !decode(w, r, &req) {
		return
	}
	entry, err := h.logs.AddCraving(r.Context(), currentUser(r).ID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "entry": entry})
}

// ListCravings handles GET /api/logs/cravings.
func (h *Handler) ListCravings(w http.ResponseWriter, r *http.Request) {
	list, err := h.logs.Cravings(r.Context(), currentUser(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "entries": list})
}

// AddSleep handles POST /api/logs/sleep.
func (h *Handler) AddSleep(w http.ResponseWriter, r *http.Request) {
	var req models.SleepLog
	if !decode(w, r, &req) {
		return
	}
	entry, err := h.logs.AddSleep(r.Context(), currentUser(r).ID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "entry": entry})
}

// ListSleep handles GET /api/logs/sleep.
func (h *Handler) ListSleep(w http.ResponseWriter, r *http.Request) {
	list, err := h.logs.Sleep(r.Context(), currentUser(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "entries": list})
}

// AddMood handles POST /api/logs/moods.
func (h *Handler) AddMood(w http.ResponseWriter, r *http.Request) {
	var req models.MoodEntry
	if !decode(w, r, &req) {
		return
	}
	entry, err := h.logs.AddMood(r.Context(), currentUser(r).ID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "entry": entry})
}

// ListMoods handles GET /api/logs/moods. The response carries the
// distribution alongside the entries.
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	list, err := h.logs.Moods(r.Context(), currentUser(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"entries":      list,
		"distribution": services.MoodDistribution(list),
	})
}
