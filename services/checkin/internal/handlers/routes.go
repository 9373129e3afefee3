package handlers

import (
	"github.com/diagnosis/staycheck/pkg/middleware"
	"github.com/go-chi/chi/v5"
)

// Register mounts every /v1 route on r.
func (h *Handlers) Register(r chi.Router, limiter middleware.Limiter, idempotency middleware.IdempotencyStore) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.Login)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireHost)

				r.Get("/properties", h.ListProperties)
				r.Post("/properties", h.CreateProperty)

				r.Get("/guests", h.ListGuests)
				r.With(middleware.IdempotencyMiddleware(idempotency)).Post("/guests", h.CreateGuest)
				r.Get("/guests/{id}", h.GetGuest)
				r.Get("/guests/{id}/magic-link", h.GetMagicLink)
				r.Post("/guests/{id}/magic-link/send", h.SendMagicLink)

				r.Get("/questions", h.ListQuestions)
				r.Post("/questions", h.CreateQuestion)
				r.Get("/questions/{id}/answers", h.ListAnswers)
				r.Post("/questions/{id}/answers", h.CreateAnswer)

				r.Get("/pages", h.ListInstructionPages)
				r.Post("/pages", h.CreateInstructionPage)
				r.Get("/pages/{id}", h.GetInstructionPage)
				r.Post("/pages/{id}/steps", h.AppendStep)
				r.Patch("/pages/{id}/steps/{index}", h.UpdateStep)
				r.Delete("/pages/{id}/steps/{index}", h.RemoveStep)
				r.Post("/pages/{id}/steps/{index}/move", h.MoveStep)
			})
		})

		r.With(middleware.RateLimit(limiter, middleware.CheckInRateLimitKeyFunc)).Get("/checkin", h.StartCheckIn)

		r.Route("/guest", func(r chi.Router) {
			r.Use(h.RequireGuestSession)

			r.Get("/checkin", h.GetCheckIn)
			r.Patch("/contact", h.UpdateContact)
			r.Post("/id-document", h.UploadIDDocument)
			r.Post("/answers/{answerID}", h.SelectAnswer)
		})
	})
}
