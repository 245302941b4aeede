package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAuthService(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	repo := mock.NewMockUserRepository(ctrl)
	cfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-note-keeper",
		TokenDuration: time.Hour,
	}
	return NewAuthService(repo, cfg, logger.Nop()), repo
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestRegisterUser_Success_HashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthService(t, ctrl)

	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User) (models.User, error) {
			assert.Empty(t, user.Password, "plaintext must not reach the store")
			require.NotEmpty(t, user.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
			user.UserID = 1
			return user, nil
		})

	registered, err := svc.RegisterUser(context.Background(), models.User{Login: "john", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
}

func TestRegisterUser_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_LoginTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthService(t, ctrl)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john", Password: "s3cret"})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthService(t, ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.EXPECT().FindUserByLogin(gomock.Any(), "john").
		Return(models.User{UserID: 1, Login: "john", PasswordHash: string(hash)}, nil)

	user, err := svc.Login(context.Background(), models.User{Login: "john", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
	assert.Empty(t, user.Password)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthService(t, ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.EXPECT().FindUserByLogin(gomock.Any(), "john").
		Return(models.User{UserID: 1, Login: "john", PasswordHash: string(hash)}, nil)

	_, err = svc.Login(context.Background(), models.User{Login: "john", Password: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthService(t, ctrl)
	repo.EXPECT().FindUserByLogin(gomock.Any(), "ghost").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(context.Background(), models.User{Login: "ghost", Password: "x"})
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestCreateToken_RoundTripsThroughParse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestParseToken_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestParseToken_WrongSignKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	otherRepo := mock.NewMockUserRepository(ctrl)
	other := NewAuthService(otherRepo, config.App{
		TokenSignKey:  "different-key",
		TokenIssuer:   "go-note-keeper",
		TokenDuration: time.Hour,
	}, logger.Nop())

	token, err := other.CreateToken(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}
