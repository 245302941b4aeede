// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAuthService implements service.AuthService through per-test function
// fields.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newHandlerWithAuth(t *testing.T, auth service.AuthService) *Handler {
	t.Helper()
	return NewHandler(&service.Services{AuthService: auth}, logger.Nop())
}

// credsBody builds the JSON body of a register or login request.
func credsBody(login, password string) string {
	return fmt.Sprintf(`{"login":%q,"password":%q}`, login, password)
}

// postAuth sends the body to the given unauthenticated handler method.
func postAuth(path, body string, call func(http.ResponseWriter, *http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	call(rec, req)
	return rec
}

const noteTakerCreds = `{"login":"zoia","password":"correct-horse"}`

// ── register ──────────────────────────────────────────────────────────────────

func TestRegister_IssuesBearerToken(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		registerUserFn: func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "zoia", u.Login)
			return u, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{SignedString: signedToken}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	rec := postAuth("/api/auth/register", noteTakerCreds, h.register)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		registerFn func(ctx context.Context, u models.User) (models.User, error)
		tokenFn    func(ctx context.Context, u models.User) (models.Token, error)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "malformed JSON body",
			body:       "{invalid json}",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid JSON was passed",
		},
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "validation failure in service",
			body: credsBody("zoia", ""),
			registerFn: func(_ context.Context, _ models.User) (models.User, error) {
				return models.User{}, service.ErrInvalidDataProvided
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid data provided",
		},
		{
			name: "login taken by another note taker",
			body: noteTakerCreds,
			registerFn: func(_ context.Context, _ models.User) (models.User, error) {
				return models.User{}, store.ErrLoginAlreadyExists
			},
			wantStatus: http.StatusConflict,
			wantBody:   "login already exists",
		},
		{
			name: "wrapped conflict still matched via errors.Is",
			body: noteTakerCreds,
			registerFn: func(_ context.Context, _ models.User) (models.User, error) {
				return models.User{}, errors.Join(errors.New("outer"), store.ErrLoginAlreadyExists)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "storage failure",
			body: noteTakerCreds,
			registerFn: func(_ context.Context, _ models.User) (models.User, error) {
				return models.User{}, errors.New("db connection lost")
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "token signing failure after successful registration",
			body: noteTakerCreds,
			registerFn: func(_ context.Context, u models.User) (models.User, error) {
				return u, nil
			},
			tokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
				return models.Token{}, errors.New("signing key unavailable")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuth(t, &mockAuthService{
				registerUserFn: tt.registerFn,
				createTokenFn:  tt.tokenFn,
			})

			rec := postAuth("/api/auth/register", tt.body, h.register)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

// ── login ─────────────────────────────────────────────────────────────────────

func TestLogin_IssuesBearerToken(t *testing.T) {
	const signedToken = "signed.login.token"

	auth := &mockAuthService{
		loginFn: func(_ context.Context, u models.User) (models.User, error) {
			return models.User{UserID: 7, Login: u.Login}, nil
		},
		createTokenFn: func(_ context.Context, u models.User) (models.Token, error) {
			// токен выписывается для ID, найденного логином, не из запроса
			require.Equal(t, int64(7), u.UserID)
			return models.Token{SignedString: signedToken}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	rec := postAuth("/api/auth/login", noteTakerCreds, h.login)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))
}

func TestLogin_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginFn    func(ctx context.Context, u models.User) (models.User, error)
		tokenFn    func(ctx context.Context, u models.User) (models.Token, error)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "malformed JSON body",
			body:       "not json",
			wantStatus: http.StatusBadRequest,
		},
		{
			// the 401 body must not reveal which of login/password was wrong
			name: "wrong password",
			body: noteTakerCreds,
			loginFn: func(_ context.Context, _ models.User) (models.User, error) {
				return models.User{}, service.ErrWrongPassword
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid login/password",
		},
		{
			name: "unknown login answers like a wrong password",
			body: noteTakerCreds,
			loginFn: func(_ context.Context, _ models.User) (models.User, error) {
				return models.User{}, store.ErrNoUserWasFound
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid login/password",
		},
		{
			name: "storage failure",
			body: noteTakerCreds,
			loginFn: func(_ context.Context, _ models.User) (models.User, error) {
				return models.User{}, errors.New("db is down")
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "token creation failure after successful login",
			body: noteTakerCreds,
			loginFn: func(_ context.Context, u models.User) (models.User, error) {
				return u, nil
			},
			tokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
				return models.Token{}, service.ErrTokenCreationFailed
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuth(t, &mockAuthService{
				loginFn:       tt.loginFn,
				createTokenFn: tt.tokenFn,
			})

			rec := postAuth("/api/auth/login", tt.body, h.login)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
