package login

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/motion-gateway/internal/lib/jwt"
	services "github.com/magabrotheeeer/motion-gateway/internal/services/auth"
	"github.com/magabrotheeeer/motion-gateway/internal/storage/memory"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func doRequest(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	var bodyBytes []byte
	switch v := body.(type) {
	case string:
		bodyBytes = []byte(v)
	default:
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockToken      string
		mockErr        error
		callService    bool
		wantStatusCode int
		wantToken      string
		wantError      string
	}{
		{
			name:           "valid login",
			requestBody:    Request{Username: "nico", Password: "secret"},
			mockToken:      "tok",
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantToken:      "tok",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing username",
			requestBody:    Request{Password: "secret"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Username is a required field",
		},
		{
			name:           "empty password is an ordinary wrong password",
			requestBody:    Request{Username: "nico"},
			mockErr:        fmt.Errorf("services.auth.Login: %w", services.ErrInvalidCredentials),
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
		},
		{
			name:           "invalid credentials",
			requestBody:    Request{Username: "nico", Password: "wrong"},
			mockErr:        fmt.Errorf("services.auth.Login: %w", services.ErrInvalidCredentials),
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
		},
		{
			name:           "verification fault",
			requestBody:    Request{Username: "nico", Password: "secret"},
			mockErr:        fmt.Errorf("services.auth.Login: %w", services.ErrVerification),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), authMock)

			if tt.callService {
				req := tt.requestBody.(Request)
				authMock.On("Login", req.Username, req.Password).Return(tt.mockToken, tt.mockErr).Once()
			}

			rec := doRequest(t, handler, tt.requestBody)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
				assert.Nil(t, got["token"])
			} else {
				assert.Equal(t, tt.wantToken, got["token"])
				assert.Nil(t, got["error"])
			}

			authMock.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_ProvisionedAccount(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.RegisterUser("nico", "secret"))
	maker, err := jwt.NewJWTMaker("signing_secret")
	require.NoError(t, err)
	handler := New(newNoopLogger(), services.NewAuthService(store, maker))

	ok := doRequest(t, handler, Request{Username: "nico", Password: "secret"})
	require.Equal(t, http.StatusOK, ok.Code)
	var tokenResp map[string]string
	require.NoError(t, json.NewDecoder(ok.Body).Decode(&tokenResp))
	assert.NotEmpty(t, tokenResp["token"])

	wrong := doRequest(t, handler, Request{Username: "nico", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, wrong.Code)

	for name, req := range map[string]Request{
		"unknown user":      {Username: "ghost", Password: "secret"},
		"empty password":    {Username: "nico", Password: ""},
		"too long password": {Username: "nico", Password: "secret" + strings.Repeat("x", 80)},
	} {
		rec := doRequest(t, handler, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.Equal(t, wrong.Body.String(), rec.Body.String(), name)
	}
}
