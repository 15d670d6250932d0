package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "user-account-service/pkg/errors"
	"user-account-service/pkg/security"
	"user-account-service/pkg/token"

	"user-account-service/internal/usecase/user"
)

// Authenticator answers whether an email/password pair is valid and, if so,
// issues the signed token representing the session.
type Authenticator struct {
	repo   user.Repository
	tokens *token.Manager
	log    *zap.Logger
}

// New creates an Authenticator over the given credential store and token manager.
func New(repo user.Repository, tokens *token.Manager, log *zap.Logger) *Authenticator {
	return &Authenticator{repo: repo, tokens: tokens, log: log}
}

// Authenticate verifies the credentials and returns a signed bearer token with
// the user's email as the subject claim.
//
// Unknown email and wrong password both fail with the same ErrInvalidCredentials
// so that callers cannot enumerate registered accounts. Do not split these into
// distinct results.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := a.repo.GetByEmail(ctx, email)
	if err != nil {
		a.log.Error("credential lookup failed", zap.Error(err))
		return "", err
	}
	if u == nil {
		a.log.Info("authentication failed", zap.String("email", email))
		return "", apperrors.ErrInvalidCredentials
	}

	if err := security.VerifyPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, security.ErrMalformedHash) {
			// Data corruption, not a bad password. Still indistinguishable to
			// the caller, but worth the louder log line.
			a.log.Error("stored password hash is malformed", zap.String("id", u.ID))
		} else {
			a.log.Info("authentication failed", zap.String("email", email))
		}
		return "", apperrors.ErrInvalidCredentials
	}

	signed, err := a.tokens.Issue(u.Email)
	if err != nil {
		a.log.Error("failed to issue token", zap.Error(err))
		return "", apperrors.NewInternalError("failed to issue token", err)
	}

	a.log.Info("authentication succeeded", zap.String("id", u.ID))
	return signed, nil
}
