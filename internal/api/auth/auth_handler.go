package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kitchenbuddy/kitchenbuddy/app/observability/metrics"
	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
)

// AuthHandler exposes the credential component over HTTP.
type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		h.logger.WarnContext(ctx, "Login attempt with missing credentials")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Username and password are required.")
		return
	}

	payload, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			metrics.Get().LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unauthorized")))
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		h.logger.ErrorContext(ctx, "Error during login", slog.Any("error", err))
		metrics.Get().LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "An error occurred during login. Please try again.")
		return
	}

	metrics.Get().LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	api.WriteJSONResponse(w, r, http.StatusOK, api.SuccessResult(payload, "Login successful"))
}

// SignUp handles POST /auth/signUp.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignUpRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := h.authService.Register(ctx, req)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			metrics.Get().SignUpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "invalid")))
			api.ErrorResponse(w, r, http.StatusBadRequest, "Validation failed", vErr.Errors...)
		case errors.Is(err, api.ErrConflict):
			metrics.Get().SignUpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "conflict")))
			api.ErrorResponse(w, r, http.StatusConflict, conflictMessage(err))
		default:
			h.logger.ErrorContext(ctx, "Error during user registration", slog.Any("error", err))
			metrics.Get().SignUpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "An error occurred during registration. Please try again.")
		}
		return
	}

	metrics.Get().SignUpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	api.WriteJSONResponse(w, r, http.StatusCreated, api.SuccessResult(payload, "User registered successfully"))
}

func conflictMessage(err error) string {
	if errors.Is(err, ErrEmailTaken) {
		return "User with this email already exists."
	}
	return "Username is already taken."
}
