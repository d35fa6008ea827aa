package handlers

import (
	"net/http"

	"github.com/AnshRaj112/mindcare-backend/internal/services"
	"go.uber.org/zap"
)

const maxPictureSize = 5 << 20

// SubmitService handles PUT /api/therapist/service. New and rejected services
// go (back) to pending review.
func (h *Handler) SubmitService(w http.ResponseWriter, r *http.Request) {
	var req services.ServiceInput
	if !decode(w, r, &req) {
		return
	}
	svc, err := h.lifecycle.SubmitService(r.Context(), currentUser(r).ID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Service submitted for review",
		"service": svc,
	})
}

// MyService handles GET /api/therapist/service.
func (h *Handler) MyService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.lifecycle.ServiceFor(r.Context(), currentUser(r).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "service": svc})
}

// UploadPicture handles POST /api/therapist/picture (multipart field "file").
func (h *Handler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "File uploads are not configured")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxPictureSize+1024)
	if err := r.ParseMultipartForm(maxPictureSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}
	_, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}

	therapistID := currentUser(r).ID
	url, err := services.UploadProfilePicture(r.Context(), h.uploader, header, therapistID)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.log.Error("profile picture upload failed", zap.String("therapist_id", therapistID), zap.Error(err))
			writeError(w, http.StatusBadGateway, "Failed to upload file")
			return
		}
		h.fail(w, r, err)
		return
	}
	svc, err := h.lifecycle.SetProfilePicture(r.Context(), therapistID, url)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
		"service": svc,
	})
}

// BookableTherapists handles GET /api/therapists?q=&specialization=.
func (h *Handler) BookableTherapists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.lifecycle.Bookable(r.Context(), q.Get("q"), q.Get("specialization"))
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
