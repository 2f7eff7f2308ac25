package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrEmptySecret is returned when a token service is built without a signing key.
var ErrEmptySecret = errors.New("token signing secret is empty")

// TokenService issues and validates bearer tokens binding a username to a
// signed, time-scoped credential.
type TokenService interface {
	// Issue produces a signed token whose subject is the given username.
	Issue(username string) (string, error)
	// Validate reports whether the token carries a valid signature, has not
	// expired, and asserts exactly the expected username as its subject.
	// It fails closed: any parse or verification problem yields false.
	Validate(token, expectedUsername string) bool
}

// hmacTokenService signs tokens with HMAC-SHA256.
type hmacTokenService struct {
	secret   []byte
	ttl      time.Duration
	timeFunc func() time.Time
}

// NewTokenService builds an HMAC-SHA256 token service. The secret is loaded
// once at startup and never rotated at runtime.
func NewTokenService(secret string, ttl time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &hmacTokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		timeFunc: time.Now,
	}, nil
}

func (s *hmacTokenService) Issue(username string) (string, error) {
	now := s.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *hmacTokenService) Validate(tokenString, expectedUsername string) bool {
	if tokenString == "" || expectedUsername == "" {
		return false
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return false
	}

	// The subject match is the single authorization rule of the system:
	// exact, case-sensitive equality against the expected username.
	return subtle.ConstantTimeCompare([]byte(claims.Subject), []byte(expectedUsername)) == 1
}
