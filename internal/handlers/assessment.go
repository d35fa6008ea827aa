package handlers

import (
	"net/http"
	"strings"

	"github.com/AnshRaj112/mindcare-backend/internal/services"
)

// Issues handles GET /api/issues.
func (h *Handler) Issues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "issues": services.Issues()})
}

// Modules handles GET /api/modules.
func (h *Handler) Modules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "modules": services.Modules()})
}

// StartAssessment handles POST /api/assessments.
func (h *Handler) StartAssessment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IssueID string `json:"issueId"`
	}
	if !decode(w, r, &req) {
		return
	}
	view, err := h.assessments.Start(currentUser(r).ID, strings.TrimSpace(req.IssueID))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "assessment": view})
}

// CurrentAssessment handles GET /api/assessments/current.
func (h *Handler) CurrentAssessment(w http.ResponseWriter, r *http.Request) {
	view, err := h.assessments.Current(currentUser(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "assessment": view})
}

// AnswerQuestion handles POST /api/assessments/answer. The final answer
// returns the generated plan instead of a next question.
func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Please provide an answer before continuing")
		return
	}
	view, plan, err := h.assessments.Answer(currentUser(r).ID, req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if plan != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "completed": true, "plan": plan})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "completed": false, "assessment": view})
}

// PreviousQuestion handles POST /api/assessments/previous.
func (h *Handler) PreviousQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.assessments.Previous(currentUser(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "assessment": view})
}

// CancelAssessment handles DELETE /api/assessments/current.
func (h *Handler) CancelAssessment(w http.ResponseWriter, r *http.Request) {
	h.assessments.Cancel(currentUser(r).ID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// PendingPlan handles GET /api/plans/pending.
func (h *Handler) PendingPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.assessments.PendingPlan(currentUser(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "plan": plan})
}

// AcceptPlan handles POST /api/plans/accept.
func (h *Handler) AcceptPlan(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r).ID
	plan, err := h.assessments.PendingPlan(userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	progress, err := h.progress.AcceptPlan(r.Context(), userID, plan)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.assessments.DiscardPlan(userID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Therapy plan saved",
		"progress": progress,
	})
}

// DiscardPlan handles DELETE /api/plans/pending.
func (h *Handler) DiscardPlan(w http.ResponseWriter, r *http.Request) {
	h.assessments.DiscardPlan(currentUser(r).ID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
