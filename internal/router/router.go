package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/kitchenbuddy/kitchenbuddy/internal/api/auth"
	"github.com/kitchenbuddy/kitchenbuddy/internal/api/recipe"
	"github.com/kitchenbuddy/kitchenbuddy/internal/api/suggestions"
)

// Config contains the handlers and middleware the router wires together.
type Config struct {
	AuthHandler            *auth.AuthHandler
	RecipeHandler          *recipe.RecipeHandler
	SuggestionHandler      *suggestions.SuggestionHandler
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter builds the application router. Server-wide middleware
// (request ID, logging, recoverer) is applied in main.go before this
// router is mounted.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	// Public routes.
	r.Group(func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)
		r.Post("/auth/signup", cfg.AuthHandler.SignUp)
	})

	// Everything below requires a valid session token.
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", cfg.RecipeHandler.List)
			r.Post("/", cfg.RecipeHandler.Create)
			r.Post("/suggestions", cfg.SuggestionHandler.Suggest)

			r.Route("/{recipeID}", func(r chi.Router) {
				r.Get("/", cfg.RecipeHandler.Get)
				r.Put("/", cfg.RecipeHandler.Replace)
				r.Patch("/", cfg.RecipeHandler.Patch)
				r.Delete("/", cfg.RecipeHandler.Delete)
			})
		})
	})

	return r
}
