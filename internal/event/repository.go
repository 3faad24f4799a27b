package event

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
)

// Repository is the outbox table of lifecycle events.
type Repository interface {
	Insert(ctx context.Context, e *Event) error
	// ClaimUnpublished locks up to limit unpublished events, oldest first.
	// It must run inside a transaction.
	ClaimUnpublished(ctx context.Context, limit int) ([]*Event, error)
	MarkPublished(ctx context.Context, ids []string, at time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Insert(ctx context.Context, e *Event) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.booking_events").
		Columns("id", "booking_id", "reference", "event_kind", "status", "reason", "occurred_at").
		Values(e.ID, e.BookingID, e.Reference, e.Kind, e.Status, e.Reason, e.OccurredAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert event query failed: %w", err)
	}

	if _, err := db.Conn(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert event failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ClaimUnpublished(ctx context.Context, limit int) ([]*Event, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "booking_id", "reference", "event_kind", "status", "reason", "occurred_at",
	).
		From("public.booking_events").
		Where(squirrel.Eq{"published_at": nil}).
		OrderBy("occurred_at", "id").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build claim events query failed: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("claim events failed: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Reference, &e.Kind, &e.Status, &e.Reason, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan event failed: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (r *pgxRepository) MarkPublished(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.booking_events").
		Set("published_at", at).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark published query failed: %w", err)
	}

	if _, err := db.Conn(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark events published failed: %w", err)
	}
	return nil
}
