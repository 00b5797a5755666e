package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// slowQueryThreshold is the duration beyond which a query is logged as slow.
const slowQueryThreshold = time.Second

// Executor is the query surface exposed to repositories.
type Executor interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Gateway runs SQL through the shared pool, logging slow queries and
// failures. Parameter values are never logged, only their count.
type Gateway struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewGateway wraps the pool with query instrumentation.
func NewGateway(pool *pgxpool.Pool, logger *zap.Logger) *Gateway {
	return &Gateway{pool: pool, logger: logger}
}

// Query executes a multi-row query.
func (g *Gateway) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	start := time.Now()
	rows, err := g.pool.Query(ctx, sql, args...)
	g.observe(sql, len(args), time.Since(start), err)
	return rows, err
}

// QueryRow executes a single-row query. Errors surface at Scan time and
// are logged there.
func (g *Gateway) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &observedRow{
		gateway:  g,
		sql:      sql,
		argCount: len(args),
		start:    time.Now(),
		row:      g.pool.QueryRow(ctx, sql, args...),
	}
}

// Exec executes a statement that returns no rows.
func (g *Gateway) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	start := time.Now()
	tag, err := g.pool.Exec(ctx, sql, args...)
	g.observe(sql, len(args), time.Since(start), err)
	return tag, err
}

func (g *Gateway) observe(sql string, argCount int, duration time.Duration, err error) {
	if err != nil && err != pgx.ErrNoRows {
		g.logger.Error("query failed",
			zap.String("sql", truncateSQL(sql)),
			zap.Int("param_count", argCount),
			zap.Error(err),
		)
		return
	}
	if duration > slowQueryThreshold {
		g.logger.Warn("slow query",
			zap.String("sql", truncateSQL(sql)),
			zap.Duration("duration", duration),
		)
	}
}

type observedRow struct {
	gateway  *Gateway
	sql      string
	argCount int
	start    time.Time
	row      pgx.Row
}

func (r *observedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.gateway.observe(r.sql, r.argCount, time.Since(r.start), err)
	return err
}

func truncateSQL(sql string) string {
	collapsed := strings.Join(strings.Fields(sql), " ")
	if len(collapsed) > 100 {
		return collapsed[:100]
	}
	return collapsed
}
