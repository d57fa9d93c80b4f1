package sqlcrepo

import (
	"context"
	"fmt"
	"time"

	"orderdesk-backend/config"
	"orderdesk-backend/internal/infrastructure/metrics"
	"orderdesk-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	// Configure pool settings from config
	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.ConnConfig.Tracer = &queryTracer{}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

type traceKey struct{}

type traceStart struct {
	sql   string
	start time.Time
}

// queryTracer logs every statement at debug level and records its latency.
type queryTracer struct{}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, start: time.Now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	ts, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := time.Since(ts.start)
	logger.DBQuery(queryName(ts.sql), elapsed, data.Err)
	metrics.ObserveDBQuery(queryName(ts.sql), elapsed, data.Err)
}

// queryName extracts the sqlc "-- name: X" marker, falling back to "raw".
func queryName(sql string) string {
	const marker = "-- name: "
	if len(sql) <= len(marker) || sql[:len(marker)] != marker {
		return "raw"
	}
	rest := sql[len(marker):]
	for i, r := range rest {
		if r == ' ' || r == '\n' {
			return rest[:i]
		}
	}
	return rest
}
