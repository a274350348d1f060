package ports

import (
	"context"

	"github.com/bnema/platform-intake/internal/domain"
)

// SessionStore returns domain.ErrSessionNotFound from Get for unknown ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) error
}
