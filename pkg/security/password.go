package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password verification errors. ErrPasswordMismatch means the plaintext does not
// match the hash; ErrMalformedHash means the stored value is not a recognized
// bcrypt encoding and indicates data corruption rather than a bad password.
var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrMalformedHash    = errors.New("stored password hash is malformed")
)

// HashPassword generates a salted one-way hash of the given plaintext.
// Each call embeds a fresh random salt, so hashing the same plaintext twice
// yields different encodings that both verify against it.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword checks the given plaintext against a stored hash.
// It returns nil on a match, ErrPasswordMismatch when the plaintext is wrong,
// and ErrMalformedHash when the stored value is not a valid bcrypt hash.
func VerifyPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return ErrMalformedHash
}
