package handlers

import (
	"net/http"

	"github.com/AnshRaj112/mindcare-backend/internal/middleware"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/AnshRaj112/mindcare-backend/internal/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func sessionResponse(message string, sess models.Session, user models.User) map[string]interface{} {
	return map[string]interface{}{
		"success":    true,
		"message":    message,
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"user":       user,
	}
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if !decode(w, r, &req) {
		return
	}
	sess, user, err := h.identity.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	message := "Account created successfully"
	if user.Role == models.RoleTherapist {
		message = "Account created. Submit your service details for admin review."
	}
	writeJSON(w, http.StatusCreated, sessionResponse(message, sess, user))
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	sess, user, err := h.identity.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse("Signed in successfully", sess, user))
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Signed out"})
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": currentUser(r)})
}
