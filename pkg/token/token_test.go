package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-signing-secret"
	testIssuer   = "user-account-service"
	testAudience = "user-account-clients"
)

func newTestManager() *Manager {
	return NewManager([]byte(testSecret), testIssuer, testAudience)
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	m := newTestManager()

	signed, err := m.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Validate(signed)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Contains(t, claims.Audience, testAudience)
	assert.WithinDuration(t, claims.IssuedAt.Add(DefaultTTL), claims.ExpiresAt.Time, time.Second)
}

func TestValidate_Expired(t *testing.T) {
	issuedAt := time.Now()
	m := newTestManager().WithClock(func() time.Time { return issuedAt })

	signed, err := m.Issue("alice@example.com")
	require.NoError(t, err)

	// Within the lifetime the token still validates.
	m.WithClock(func() time.Time { return issuedAt.Add(59 * time.Minute) })
	_, err = m.Validate(signed)
	require.NoError(t, err)

	// Past one hour it is rejected with the distinct expiry error.
	m.WithClock(func() time.Time { return issuedAt.Add(61 * time.Minute) })
	_, err = m.Validate(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	m := newTestManager()

	signed, err := m.Issue("alice@example.com")
	require.NoError(t, err)

	other := NewManager([]byte("a-different-secret"), testIssuer, testAudience)
	_, err = other.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidate_TamperedPayload(t *testing.T) {
	m := newTestManager()

	signed, err := m.Issue("alice@example.com")
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	// Re-encode a payload with a swapped subject while keeping the original
	// signature; the signature check must reject it.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "mallory@example.com",
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	forgedSigning, err := forged.SigningString()
	require.NoError(t, err)
	forgedParts := strings.Split(forgedSigning, ".")
	require.Len(t, forgedParts, 2)

	tampered := forgedParts[0] + "." + forgedParts[1] + "." + parts[2]
	_, err = m.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidate_IssuerMismatch(t *testing.T) {
	m := newTestManager()

	signed, err := NewManager([]byte(testSecret), "some-other-issuer", testAudience).Issue("alice@example.com")
	require.NoError(t, err)

	_, err = m.Validate(signed)
	assert.ErrorIs(t, err, ErrIssuerMismatch)
}

func TestValidate_AudienceMismatch(t *testing.T) {
	m := newTestManager()

	signed, err := NewManager([]byte(testSecret), testIssuer, "some-other-audience").Issue("alice@example.com")
	require.NoError(t, err)

	_, err = m.Validate(signed)
	assert.ErrorIs(t, err, ErrAudienceMismatch)
}

func TestValidate_Malformed(t *testing.T) {
	m := newTestManager()

	for _, garbage := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := m.Validate(garbage)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", garbage)
	}
}

func TestValidate_UnsignedTokenRejected(t *testing.T) {
	m := newTestManager()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "alice@example.com",
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Validate(signed)
	assert.Error(t, err)
}
