package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

type stubAuth map[string]models.User

func (s stubAuth) Authenticate(_ context.Context, token string) (models.User, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return models.User{}, errors.New("unknown token")
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header, query, want string
	}{
		{"Bearer abc", "", "abc"},
		{"bearer  xyz ", "", "xyz"},
		{"", "qtok", "qtok"},
		{"Basic foo", "", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/ws/events", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if tt.query != "" {
			q := r.URL.Query()
			q.Set("token", tt.query)
			r.URL.RawQuery = q.Encode()
		}
		if got := BearerToken(r); got != tt.want {
			t.Errorf("header=%q query=%q: got %q, want %q", tt.header, tt.query, got, tt.want)
		}
	}
}

func TestRequireAuthAndRole(t *testing.T) {
	auth := stubAuth{
		"admin-token":   {ID: "a", Role: models.RoleAdmin},
		"patient-token": {ID: "p", Role: models.RolePatient},
	}
	h := RequireAuth(auth)(RequireRole(models.RoleAdmin)(okHandler))

	tests := []struct {
		token string
		want  int
	}{
		{"", http.StatusUnauthorized},
		{"bogus", http.StatusUnauthorized},
		{"patient-token", http.StatusForbidden},
		{"admin-token", http.StatusNoContent},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/services", nil)
		if tt.token != "" {
			r.Header.Set("Authorization", "Bearer "+tt.token)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != tt.want {
			t.Errorf("token %q: got %d, want %d", tt.token, w.Code, tt.want)
		}
	}
}

func TestRequireAuth_SetsUser(t *testing.T) {
	auth := stubAuth{"t": {ID: "u1", Role: models.RolePatient}}
	var seen models.User
	h := RequireAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFrom(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer t")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen.ID != "u1" {
		t.Errorf("user not on context: %+v", seen)
	}
}

func TestHostCheck(t *testing.T) {
	h := HostCheck("api.mindcare.example")(okHandler)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Host = "API.mindcare.example:443"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Errorf("matching host rejected: %d", w.Code)
	}

	r.Host = "evil.example"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign host allowed: %d", w.Code)
	}
}

func TestRateLimit_OnlyListedPaths(t *testing.T) {
	l := newIPLimiter(rate.Every(1<<62), 1)
	h := rateLimit(l, "slow down", map[string]bool{"/api/auth/login": true})(okHandler)

	for i, want := range []int{http.StatusNoContent, http.StatusTooManyRequests} {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != want {
			t.Errorf("login attempt %d: got %d, want %d", i, w.Code, want)
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/api/modules", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Errorf("unlisted path should not be limited: %d", w.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"})(okHandler)

	r := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allowed origin not echoed: %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	r.Header.Set("Origin", "https://other.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/modules", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["path"] != "/api/modules" {
		t.Errorf("unexpected fields %v", fields)
	}
}
