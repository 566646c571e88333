package hosts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a missing, malformed, or expired bearer token.
var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 30 * 24 * time.Hour

// Store describes the persistence operations required by the host service.
type Store interface {
	CreateHost(ctx context.Context, email, password string) (int64, error)
	AuthenticateHost(ctx context.Context, email, password string) (int64, error)
}

// Service exposes host account workflows.
type Service interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Verify(token string) (int64, error)
}

type service struct {
	store  Store
	secret []byte
}

// New wires a Service backed by the provided Store. The secret signs
// the HS256 tokens handed out on signup and login.
func New(store Store, secret []byte) Service {
	return &service{store: store, secret: secret}
}

func (s *service) Signup(ctx context.Context, email, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := s.store.CreateHost(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.mint(id)
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := s.store.AuthenticateHost(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.mint(id)
}

func (s *service) Verify(token string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

func (s *service) mint(hostID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(hostID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
