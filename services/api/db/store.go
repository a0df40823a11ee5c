package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps database access helpers for the analytics API.
//
// Three tables back the service: tap_log (the current traffic log),
// tap_log_history (an optional multi-year elderly-rider log with the same
// shape) and station_meta (one row per station and line, with coordinates).
// Station codes are stored inconsistently zero-padded across the tables, so
// every code comparison in this package goes through codeExpr on both sides.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// codeExpr normalizes a station code column inside SQL: left-pad with zeros
// to width 4, but never truncate a longer code. Empty codes become NULL via
// NULLIF, so they drop out of every equality join and lookup instead of
// collapsing onto an all-zero key. Mirrors station.Normalize, which maps ""
// to "".
func codeExpr(col string) string {
	c := "NULLIF(" + col + ", '')"
	return "lpad(" + c + ", greatest(char_length(" + c + "), 4), '0')"
}

// elderlyPred matches the rider groups treated as the elderly/vulnerable
// analytical population. The labels are free text in the source data.
const elderlyPred = `(rider_group ILIKE '%senior%' OR rider_group ILIKE '%vulnerable%' OR rider_group ILIKE '%discounted%')`

const hasHistorySQL = `SELECT to_regclass('tap_log_history') IS NOT NULL`

// HasHistory reports whether the optional multi-year history table exists.
// Callers must probe before querying it, never assume it is present.
func (s *Store) HasHistory(ctx context.Context) (bool, error) {
	var ok bool
	if err := s.pool.QueryRow(ctx, hasHistorySQL).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

const (
	countCurrentSQL = `SELECT COUNT(*) FROM tap_log`
	countHistorySQL = `SELECT COUNT(*) FROM tap_log_history`
	countMetaSQL    = `SELECT COUNT(*) FROM station_meta`
)

// CountCurrent returns the number of rows in the current traffic log.
func (s *Store) CountCurrent(ctx context.Context) (int64, error) {
	return s.count(ctx, countCurrentSQL)
}

// CountHistory returns the number of rows in the historical traffic log.
func (s *Store) CountHistory(ctx context.Context) (int64, error) {
	return s.count(ctx, countHistorySQL)
}

// CountMeta returns the number of rows in the station metadata table.
func (s *Store) CountMeta(ctx context.Context) (int64, error) {
	return s.count(ctx, countMetaSQL)
}

func (s *Store) count(ctx context.Context, sql string) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, sql).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
