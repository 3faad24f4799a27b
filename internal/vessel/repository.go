package vessel

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/freight-booking-backend/internal/db"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
)

// Repository defines read access to the vessel directory.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Vessel, error)
	GetByIMO(ctx context.Context, imo string) (*Vessel, error)
	ListByName(ctx context.Context, name string) ([]*Vessel, error)
	List(ctx context.Context, q ListQuery) ([]*Vessel, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var vesselColumns = []string{
	"id", "coalesce(imo_number, '')", "name", "coalesce(flag, '')",
	"coalesce(call_sign, '')", "coalesce(operator_carrier_code, '')", "created_at",
}

func scanVessel(row pgx.Row, v *Vessel, extra ...any) error {
	dest := []any{&v.ID, &v.IMONumber, &v.Name, &v.Flag, &v.CallSign, &v.OperatorCarrierCode, &v.CreatedAt}
	return row.Scan(append(dest, extra...)...)
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*Vessel, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(vesselColumns...).
		From("public.vessels").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get vessel query failed: %w", err)
	}

	var v Vessel
	if err := scanVessel(db.Conn(ctx, r.pool).QueryRow(ctx, query, args...), &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get vessel failed: %w", err)
	}
	return &v, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Vessel, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByIMO(ctx context.Context, imo string) (*Vessel, error) {
	return r.getOne(ctx, squirrel.Eq{"imo_number": imo})
}

func (r *pgxRepository) ListByName(ctx context.Context, name string) ([]*Vessel, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(vesselColumns...).
		From("public.vessels").
		Where(squirrel.Eq{"name": name}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list vessels by name query failed: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vessels by name failed: %w", err)
	}
	defer rows.Close()

	var vessels []*Vessel
	for rows.Next() {
		var v Vessel
		if err := scanVessel(rows, &v); err != nil {
			return nil, fmt.Errorf("scan vessel failed: %w", err)
		}
		vessels = append(vessels, &v)
	}
	return vessels, rows.Err()
}

func (r *pgxRepository) List(ctx context.Context, q ListQuery) ([]*Vessel, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(append([]string{}, vesselColumns...), "count(*) OVER() as total_count")
	query := psql.Select(columns...).
		From("public.vessels")

	if q.Name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + q.Name + "%"})
	}
	if q.Flag != "" {
		query = query.Where(squirrel.Eq{"flag": q.Flag})
	}

	orderBy, err := pagination.OrderClauses(q.Cursor.Sort, SortColumns)
	if err != nil {
		return nil, 0, apperror.InvalidInput("%s", err.Error())
	}
	query = query.OrderBy(append(orderBy, "id")...).
		Limit(uint64(q.Cursor.PageSize)).
		Offset(uint64(q.Cursor.Offset()))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list vessels query failed: %w", err)
	}

	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vessels failed: %w", err)
	}
	defer rows.Close()

	var vessels []*Vessel
	var total int

	for rows.Next() {
		var v Vessel
		if err := scanVessel(rows, &v, &total); err != nil {
			return nil, 0, fmt.Errorf("scan vessel failed: %w", err)
		}
		vessels = append(vessels, &v)
	}

	return vessels, total, rows.Err()
}
