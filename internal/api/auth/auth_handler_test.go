package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kitchenbuddy/kitchenbuddy/app/observability/metrics"
	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*AuthPayload, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthPayload), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req SignUpRequest) (*AuthPayload, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthPayload), args.Error(1)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Response {
	t.Helper()
	var resp api.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuthHandlerLogin(t *testing.T) {
	metrics.InitAppMetrics()
	logger := slog.Default()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		payload := &AuthPayload{
			UserID:   "user-1",
			Username: "ada",
			Email:    "ada@example.com",
			Usertype: RoleCustomer,
			Token:    "signed.jwt.token",
		}
		mockService.On("Login", mock.Anything, "ada", "Str0ng!Pass").Return(payload, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"ada","password":"Str0ng!Pass"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.True(t, resp.Success)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "ada", data["username"])
		assert.Equal(t, "signed.jwt.token", data["token"])
		mockService.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"","password":""}`))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "Username and password are required.", resp.Message)
		mockService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		mockService.On("Login", mock.Anything, "ada", "wrong").
			Return(nil, fmt.Errorf("%w: invalid credentials", api.ErrUnauthenticated)).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"ada","password":"wrong"}`))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.Equal(t, "Invalid credentials.", resp.Message)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		mockService.On("Login", mock.Anything, "ada", "Str0ng!Pass").
			Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"ada","password":"Str0ng!Pass"}`))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeEnvelope(t, rec)
		// The wire message never leaks the underlying failure.
		assert.NotContains(t, resp.Message, "db down")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":`))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerSignUp(t *testing.T) {
	metrics.InitAppMetrics()
	logger := slog.Default()

	body := `{"name":"Ada","surname":"Lovelace","email":"ada@example.com","username":"ada","password":"Str0ng!Pass","confirmPassword":"Str0ng!Pass"}`

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		payload := &AuthPayload{
			UserID:   "user-1",
			Username: "ada",
			Email:    "ada@example.com",
			Name:     "Ada",
			Surname:  "Lovelace",
			Usertype: RoleCustomer,
			Token:    "signed.jwt.token",
		}
		mockService.On("Register", mock.Anything, mock.AnythingOfType("SignUpRequest")).Return(payload, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.True(t, resp.Success)
		assert.Equal(t, "User registered successfully", resp.Message)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "customer", data["usertype"])
		assert.NotEmpty(t, data["token"])
	})

	t.Run("ValidationFailureListsEveryViolation", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		violations := []string{
			"Password must contain at least one uppercase letter.",
			"Passwords do not match.",
		}
		mockService.On("Register", mock.Anything, mock.AnythingOfType("SignUpRequest")).
			Return(nil, &ValidationError{Errors: violations}).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.Equal(t, "Validation failed", resp.Message)
		assert.Equal(t, violations, resp.Errors)
	})

	t.Run("EmailConflict", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		mockService.On("Register", mock.Anything, mock.AnythingOfType("SignUpRequest")).
			Return(nil, ErrEmailTaken).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.Equal(t, "User with this email already exists.", resp.Message)
	})

	t.Run("UsernameConflict", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		mockService.On("Register", mock.Anything, mock.AnythingOfType("SignUpRequest")).
			Return(nil, ErrUsernameTaken).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.Equal(t, "Username is already taken.", resp.Message)
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewAuthHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/auth/signup",
			strings.NewReader(`{"name":"Ada","unexpected":true}`))
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}
