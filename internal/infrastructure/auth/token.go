package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("jwt secret is required")
)

// JWTIssuer signs and verifies HS256 access tokens whose subject is the user id.
// A zero ttl issues tokens without an exp claim.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type IssuerOption func(*JWTIssuer)

func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *JWTIssuer) {
		i.now = now
	}
}

func NewJWTIssuer(secret string, ttl time.Duration, opts ...IssuerOption) (*JWTIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	issuer := &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer, nil
}

// Issue returns the signed token and its lifetime in seconds, nil when it never expires.
func (i *JWTIssuer) Issue(userID uint) (string, *int, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:  strconv.FormatUint(uint64(userID), 10),
		IssuedAt: jwt.NewNumericDate(now),
	}

	var expiresIn *int
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
		secs := int(i.ttl / time.Second)
		expiresIn = &secs
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresIn, nil
}

func (i *JWTIssuer) Parse(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	return uint(id), nil
}
