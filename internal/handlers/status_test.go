package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnshRaj112/mindcare-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", services.ErrValidation), http.StatusBadRequest},
		{services.ErrUnknownModule, http.StatusBadRequest},
		{services.ErrUnauthorized, http.StatusUnauthorized},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrNoPendingPlan, http.StatusNotFound},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrEmailTaken, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("%v: got %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestLifecycleAction(t *testing.T) {
	h := &Handler{log: zap.NewNop()}
	tests := []struct {
		name   string
		action lifecycleFunc
		want   int
	}{
		{"applied", func(context.Context, string) (services.LifecycleResult, error) {
			return services.LifecycleResult{Applied: true, TherapistID: "t1"}, nil
		}, http.StatusOK},
		{"unknown id", func(context.Context, string) (services.LifecycleResult, error) {
			return services.LifecycleResult{}, nil
		}, http.StatusNotFound},
		{"bad transition", func(context.Context, string) (services.LifecycleResult, error) {
			return services.LifecycleResult{}, services.ErrInvalidTransition
		}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			action := func(ctx context.Context, id string) (services.LifecycleResult, error) {
				gotID = id
				return tt.action(ctx, id)
			}
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "svc-7")
			r := httptest.NewRequest(http.MethodPut, "/api/admin/services/svc-7/approve", nil)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			h.lifecycleAction(action, "done")(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if gotID != "svc-7" {
				t.Errorf("action got id %q", gotID)
			}
		})
	}
}
