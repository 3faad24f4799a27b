package event

import (
	"context"

	"github.com/google/uuid"
)

// Sink records lifecycle events in the outbox. When called inside a transaction
// the event commits or rolls back together with the booking change.
type Sink struct {
	repo Repository
}

func NewSink(repo Repository) *Sink {
	return &Sink{repo: repo}
}

func (s *Sink) Notify(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return s.repo.Insert(ctx, &e)
}
