package voyage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Voyage, error)
	// FirstByNumber returns the oldest voyage with the given carrier voyage number.
	FirstByNumber(ctx context.Context, number string) (*Voyage, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) get(ctx context.Context, where squirrel.Sqlizer) (*Voyage, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "carrier_voyage_number", "coalesce(universal_voyage_reference, '')",
		"coalesce(service_code, '')", "created_at",
	).
		From("public.voyages").
		Where(where).
		OrderBy("created_at", "id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get voyage query failed: %w", err)
	}

	var v Voyage
	err = db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.CarrierVoyageNumber, &v.UniversalVoyageReference, &v.ServiceCode, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get voyage failed: %w", err)
	}
	return &v, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Voyage, error) {
	return r.get(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) FirstByNumber(ctx context.Context, number string) (*Voyage, error) {
	return r.get(ctx, squirrel.Eq{"carrier_voyage_number": number})
}
