package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"creditref/internal/platform/middleware"
	dErrors "creditref/pkg/domain-errors"
)

// Issuer and Audience are the values the API server signs and expects.
const (
	Issuer   = "creditref"
	Audience = "creditref-api"
)

// Claims is the payload of an API bearer token. Subject names the officer or
// service account building requests; ClientID names the calling application.
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 bearer tokens.
type Signer struct {
	key      []byte
	issuer   string
	audience string
	leeway   time.Duration
	now      func() time.Time
}

type Option func(*Signer)

func WithIssuer(issuer string) Option {
	return func(s *Signer) { s.issuer = issuer }
}

func WithAudience(audience string) Option {
	return func(s *Signer) { s.audience = audience }
}

// WithLeeway tolerates clock skew when checking exp and iat.
func WithLeeway(d time.Duration) Option {
	return func(s *Signer) { s.leeway = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Signer) { s.now = now }
}

// NewSigner returns a Signer for key using Issuer and Audience unless
// overridden.
func NewSigner(key string, opts ...Option) *Signer {
	s := &Signer{
		key:      []byte(key),
		issuer:   Issuer,
		audience: Audience,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for subject valid for ttl.
func (s *Signer) Issue(subject, clientID string, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signed, nil
}

// Verify checks signature, issuer, audience and expiry. Every failure carries
// CodeUnauthorized.
func (s *Signer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	case err != nil:
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	case claims.Subject == "":
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has no subject")
	}
	return claims, nil
}

func (s *Signer) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrTokenUnverifiable
	}
	return s.key, nil
}

// Identify implements middleware.Authenticator.
func (s *Signer) Identify(raw string) (*middleware.Identity, error) {
	claims, err := s.Verify(raw)
	if err != nil {
		return nil, err
	}
	return &middleware.Identity{Subject: claims.Subject, ClientID: claims.ClientID}, nil
}
