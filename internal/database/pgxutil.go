package database

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/xlab/closer"
)

// pgxUtil is a thin wrapper over a pgx pool.
type pgxUtil struct {
	pool *pgxpool.Pool
}

// NewPGX connects to postgres and returns a Queryable backed by a pgx pool.
// The pool is closed on shutdown.
func NewPGX(ctx context.Context, url string) (Queryable, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}

	closer.Bind(pool.Close)

	return &pgxUtil{pool: pool}, nil
}

// Exec runs a statement built by a sqlizer.
func (p *pgxUtil) Exec(ctx context.Context, sqlizer sqlizer) (pgconn.CommandTag, error) {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ToSql: %w", err)
	}

	return p.pool.Exec(ctx, query, args...)
}

// Select scans multiple rows into a slice.
// Returns nil when there are no rows.
func (p *pgxUtil) Select(ctx context.Context, dst interface{}, sqlizer sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return pgxscan.Select(ctx, p.pool, dst, query, args...)
}

// Get scans a single row.
// Returns pgx.ErrNoRows when there are no rows.
func (p *pgxUtil) Get(ctx context.Context, dst interface{}, sqlizer sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return pgxscan.Get(ctx, p.pool, dst, query, args...)
}
