package ports

import (
	"context"
	"errors"

	"cupcake-backend/domain/checkout"
)

// ErrSessionNotFound is returned when no session document exists for the
// given id, including sessions dropped by TTL expiry.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps checkout sessions keyed by session id. The core makes
// no assumption about the mechanism; implementations apply their own TTL
// policy and refresh it on every Save.
type SessionStore interface {
	Get(ctx context.Context, id string) (*checkout.Session, error)
	Save(ctx context.Context, s *checkout.Session) error
	Delete(ctx context.Context, id string) error
}
