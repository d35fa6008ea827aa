package handlers

import (
	"net/http"

	"github.com/AnshRaj112/mindcare-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.BookingInput
	if !decode(w, r, &req) {
		return
	}
	appt, err := h.bookings.Create(r.Context(), currentUser(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Booking created. Complete payment to confirm.",
		"booking": appt,
	})
}

// PayBooking handles POST /api/bookings/{id}/pay.
func (h *Handler) PayBooking(w http.ResponseWriter, r *http.Request) {
	appt, err := h.bookings.Pay(r.Context(), currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment received. Your session is confirmed.",
		"booking": appt,
	})
}

// ListBookings handles GET /api/bookings.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.bookings.List(r.Context(), currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"bookings": list,
		"count":    len(list),
	})
}
