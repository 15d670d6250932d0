package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL bounds the lifetime of issued tokens. There is no revocation
// mechanism, so a leaked token stays valid for at most this long.
const DefaultTTL = time.Hour

// Validation errors, one per failed constraint.
var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token has expired")
	ErrIssuerMismatch   = errors.New("token issuer does not match")
	ErrAudienceMismatch = errors.New("token audience does not match")
	ErrMalformed        = errors.New("token is malformed")
)

// Claims carries the registered claim set embedded in issued tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and validates HMAC-SHA256 signed bearer tokens for a single
// issuer/audience pair. Any holder of the secret can both issue and validate.
type Manager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a token manager with the default one hour token lifetime.
func NewManager(secret []byte, issuer, audience string) *Manager {
	return &Manager{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      DefaultTTL,
		now:      time.Now,
	}
}

// WithClock overrides the time source, used by tests to control expiry.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Issue builds and signs a token carrying the given subject identity.
// The token embeds issuer, audience, issued-at, and an expiry of now + TTL.
func (m *Manager) Issue(subject string) (string, error) {
	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a signed token and checks every constraint: signature,
// issuer equality, audience equality, and expiry. It rejects unless all pass,
// returning the distinct error for the first failed check (signature first).
func (m *Manager) Validate(signed string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(signed, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

// classify maps jwt parser errors onto the validation error taxonomy.
// Signature failures take precedence over claim constraint failures.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudienceMismatch
	default:
		return ErrMalformed
	}
}
