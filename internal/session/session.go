// Package session holds the signed-in user for the duration of a login.
// Handlers read it from the request context; only login and logout write it.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// KeyPrefix namespaces session records in shared stores.
const KeyPrefix = "umaxshipuser:"

var ErrNoSession = errors.New("session not found")

type Session struct {
	Token       string `json:"-"`
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type Store interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Load(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

func NewToken() string {
	return uuid.NewString()
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
