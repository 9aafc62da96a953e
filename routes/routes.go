package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jprn/FootTour/handlers"
	"github.com/jprn/FootTour/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Billing    *handlers.BillingHandler
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Match      *handlers.MatchHandler
	Schedule   *handlers.ScheduleHandler
	WebSocket  *handlers.WebSocketHandler
}

func InitRoutes(h Handlers, jwtSecret []byte, allowedOrigins []string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/signup", h.Auth.SignUp)
	router.Post("/auth/signin", h.Auth.SignIn)

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/me", h.Billing.Me)
		r.Post("/billing/checkout", h.Billing.Checkout)
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Public read access: shared links let anyone follow a
		// tournament without signing in.
		r.Get("/{id}", h.Tournament.Get)
		r.Get("/{id}/teams", h.Team.List)
		r.Get("/{id}/matches", h.Match.List)
		r.Get("/{id}/standings", h.Schedule.Standings)
		r.Get("/{id}/final-ranking", h.Schedule.FinalRanking)
		r.Get("/{id}/schedule/plan", h.Schedule.Plan)
		r.Get("/{id}/schedule/groups/recommendation", h.Schedule.RecommendGroups)
		r.Get("/{id}/schedule/knockout/qualifier-options", h.Schedule.QualifierOptions)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/", h.Tournament.List)
			r.Post("/", h.Tournament.Create)
			r.Put("/{id}", h.Tournament.Update)
			r.Delete("/{id}", h.Tournament.Delete)
			r.Post("/{id}/logo", h.Tournament.UploadLogo)

			r.Post("/{id}/teams", h.Team.Create)

			r.Post("/{id}/schedule/groups/propose", h.Schedule.ProposeGroups)
			r.Post("/{id}/schedule/groups/commit", h.Schedule.CommitGroups)
			r.Post("/{id}/schedule/fixtures", h.Schedule.GenerateGroupFixtures)
			r.Post("/{id}/schedule/knockout/propose", h.Schedule.ProposeKnockout)
			r.Post("/{id}/schedule/knockout/commit", h.Schedule.CommitKnockout)
			r.Post("/{id}/schedule/next-stage/propose", h.Schedule.ProposeNextStage)
			r.Post("/{id}/schedule/next-stage/commit", h.Schedule.CommitNextStage)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Put("/teams/{teamID}", h.Team.Rename)
		r.Delete("/teams/{teamID}", h.Team.Delete)
		r.Post("/teams/{teamID}/logo", h.Team.UploadLogo)

		r.Patch("/matches/{matchID}", h.Match.UpdateScore)
	})

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.Subscribe)

	router.Get("/swagger/*", httpSwagger.Handler())

	return router
}
