package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
)

// Repository defines data access methods for locations.
type Repository interface {
	// Upsert returns the id of the location with d's natural key, creating it if needed.
	Upsert(ctx context.Context, d Descriptor) (string, error)
	GetByID(ctx context.Context, id string) (*Location, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Upsert(ctx context.Context, d Descriptor) (string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	// The no-op update makes RETURNING yield the existing row on conflict.
	query, args, err := psql.Insert("public.locations").
		Columns("natural_key", "location_name", "un_location_code", "address", "facility_code").
		Values(d.NaturalKey(), nullable(d.LocationName), nullable(d.UNLocationCode), nullable(d.Address), nullable(d.FacilityCode)).
		Suffix("ON CONFLICT (natural_key) DO UPDATE SET natural_key = EXCLUDED.natural_key RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build upsert location query failed: %w", err)
	}

	var id string
	if err := db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("upsert location failed: %w", err)
	}
	return id, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Location, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "coalesce(location_name, '')", "coalesce(un_location_code, '')",
		"coalesce(address, '')", "coalesce(facility_code, '')", "created_at",
	).
		From("public.locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get location query failed: %w", err)
	}

	var l Location
	err = db.Conn(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.LocationName, &l.UNLocationCode, &l.Address, &l.FacilityCode, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocNotFound
		}
		return nil, fmt.Errorf("get location failed: %w", err)
	}
	return &l, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
