package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "user-account-service/pkg/errors"
	"user-account-service/pkg/security"
	"user-account-service/pkg/token"

	domain "user-account-service/internal/domain/user"
)

// stubRepo serves a fixed set of users keyed by email.
type stubRepo struct {
	users map[string]*domain.User
	err   error
}

func (s *stubRepo) Create(ctx context.Context, u *domain.User) (string, error) { return "", nil }
func (s *stubRepo) GetAll(ctx context.Context) ([]domain.User, error)          { return nil, nil }
func (s *stubRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, nil
}
func (s *stubRepo) Replace(ctx context.Context, u *domain.User) error { return nil }
func (s *stubRepo) Delete(ctx context.Context, id string) error       { return nil }

func (s *stubRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[email], nil
}

func setupAuthenticator(t *testing.T, repo *stubRepo) (*Authenticator, *token.Manager) {
	tokens := token.NewManager([]byte("test-signing-secret"), "user-account-service", "user-account-clients")
	return New(repo, tokens, zaptest.NewLogger(t)), tokens
}

func knownUser(t *testing.T, email, password string) *domain.User {
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{ID: "b51af8f1-0c2d-4aee-a151-3f6fdf5378d0", Email: email, PasswordHash: hash}
}

func TestAuthenticate_Success(t *testing.T) {
	repo := &stubRepo{users: map[string]*domain.User{
		"alice@example.com": knownUser(t, "alice@example.com", "correct-password"),
	}}
	a, tokens := setupAuthenticator(t, repo)

	signed, err := a.Authenticate(context.Background(), "alice@example.com", "correct-password")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
}

func TestAuthenticate_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	repo := &stubRepo{users: map[string]*domain.User{
		"alice@example.com": knownUser(t, "alice@example.com", "correct-password"),
	}}
	a, _ := setupAuthenticator(t, repo)
	ctx := context.Background()

	signedUnknown, errUnknown := a.Authenticate(ctx, "nobody@example.com", "any-password")
	signedWrong, errWrong := a.Authenticate(ctx, "alice@example.com", "wrong-password")

	// Both paths collapse into the same observable result.
	assert.Empty(t, signedUnknown)
	assert.Empty(t, signedWrong)
	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, apperrors.ErrInvalidCredentials)
}

func TestAuthenticate_MalformedStoredHash(t *testing.T) {
	repo := &stubRepo{users: map[string]*domain.User{
		"alice@example.com": {ID: "x", Email: "alice@example.com", PasswordHash: "not-a-bcrypt-hash"},
	}}
	a, _ := setupAuthenticator(t, repo)

	signed, err := a.Authenticate(context.Background(), "alice@example.com", "any-password")

	assert.Empty(t, signed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthenticate_StoreFailurePropagates(t *testing.T) {
	storeErr := apperrors.NewStoreError("find", errors.New("connection refused"))
	repo := &stubRepo{err: storeErr}
	a, _ := setupAuthenticator(t, repo)

	signed, err := a.Authenticate(context.Background(), "alice@example.com", "any-password")

	assert.Empty(t, signed)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
