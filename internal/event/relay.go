package event

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
)

// Relay moves events from the outbox to the broker. Delivery is at least once:
// an event published just before a failed commit is published again.
type Relay struct {
	repo      Repository
	tx        db.TxManager
	publisher Publisher
	log       *zap.Logger
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

func NewRelay(repo Repository, tx db.TxManager, publisher Publisher, log *zap.Logger, interval time.Duration, batchSize int) *Relay {
	return &Relay{
		repo:      repo,
		tx:        tx,
		publisher: publisher,
		log:       log,
		interval:  interval,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Run polls the outbox until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.RelayOnce(ctx)
			if err != nil {
				r.log.Warn("outbox relay failed", zap.Error(err))
				continue
			}
			if n > 0 {
				r.log.Debug("outbox relayed", zap.Int("events", n))
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many events were published.
// Events published before a failure are still marked.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	var (
		published  int
		publishErr error
	)
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		events, err := r.repo.ClaimUnpublished(ctx, r.batchSize)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(events))
		for _, e := range events {
			if err := r.publisher.PublishJSON(ctx, e.RoutingKey(), e); err != nil {
				publishErr = fmt.Errorf("publish event %s: %w", e.ID, err)
				break
			}
			ids = append(ids, e.ID)
		}

		if err := r.repo.MarkPublished(ctx, ids, r.now().UTC()); err != nil {
			return err
		}
		published = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return published, publishErr
}
