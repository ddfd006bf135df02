package session

import (
	"context"
	"time"

	"hotelsupport/models"
)

// Store is the persistence boundary for conversation sessions. Implementations
// hand out copies: mutating a returned session never changes stored state
// until it is saved.
type Store interface {
	Create(ctx context.Context, s *models.Session) (string, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
}

// Sweeper is implemented by stores without native expiry.
type Sweeper interface {
	PurgeIdle(ctx context.Context, before time.Time) (int, error)
}

func notFound(id string) error {
	return models.NewNotFound("session %s not found", id)
}
