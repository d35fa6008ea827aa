package routes

import (
	"github.com/AnshRaj112/mindcare-backend/internal/handlers"
	"github.com/AnshRaj112/mindcare-backend/internal/middleware"
	"github.com/AnshRaj112/mindcare-backend/internal/models"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r chi.Router, h *handlers.Handler, auth middleware.Authenticator) {
	// Public
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)
	r.Get("/api/issues", h.Issues)
	r.Get("/api/modules", h.Modules)
	r.Get("/api/therapists", h.BookableTherapists)

	// Authenticates on its own so browsers can pass ?token=
	r.Get("/ws/events", h.EventsWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(auth))

		r.Get("/api/auth/me", h.Me)

		// Assessment wizard and plans
		r.Post("/api/assessments", h.StartAssessment)
		r.Get("/api/assessments/current", h.CurrentAssessment)
		r.Delete("/api/assessments/current", h.CancelAssessment)
		r.Post("/api/assessments/answer", h.AnswerQuestion)
		r.Post("/api/assessments/previous", h.PreviousQuestion)
		r.Get("/api/plans/pending", h.PendingPlan)
		r.Post("/api/plans/accept", h.AcceptPlan)
		r.Delete("/api/plans/pending", h.DiscardPlan)

		// Progress
		r.Get("/api/progress", h.Progress)
		r.Post("/api/progress/modules/{moduleId}/start", h.StartModule)

		// Self-tracking logs
		r.Post("/api/logs/cravings", h.AddCraving)
		r.Get("/api/logs/cravings", h.ListCravings)
		r.Post("/api/logs/sleep", h.AddSleep)
		r.Get("/api/logs/sleep", h.ListSleep)
		r.Post("/api/logs/moods", h.AddMood)
		r.Get("/api/logs/moods", h.ListMoods)

		// Bookings
		r.Get("/api/bookings", h.ListBookings)
		r.With(middleware.RequireRole(models.RolePatient)).Post("/api/bookings", h.CreateBooking)
		r.With(middleware.RequireRole(models.RolePatient)).Post("/api/bookings/{id}/pay", h.PayBooking)

		// Therapist self-service
		r.Route("/api/therapist", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleTherapist))
			r.Get("/service", h.MyService)
			r.Put("/service", h.SubmitService)
			r.Post("/picture", h.UploadPicture)
		})

		// Admin
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/services", h.ListServices)
			r.Put("/services/{id}/approve", h.ApproveService)
			r.Put("/services/{id}/reject", h.RejectService)
			r.Put("/services/{id}/suspend", h.SuspendService)
			r.Put("/services/{id}/reactivate", h.ReactivateService)
			r.Delete("/services/{id}", h.DeleteService)
			r.Get("/therapists", h.ListTherapists)
			r.Put("/therapists/{id}", h.UpdateTherapist)
			r.Get("/users", h.ListUsers)
			r.Get("/analytics", h.Analytics)
		})
	})
}
