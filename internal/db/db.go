// Package db provides PostgreSQL database access for the screening store.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// GetStatistics returns aggregate counts across the store.
func (db *DB) GetStatistics(ctx context.Context) (*Statistics, error) {
	var s Statistics
	err := db.pool.QueryRow(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM users),
		    (SELECT COUNT(*) FROM job_postings),
		    (SELECT COUNT(*) FROM screening_sessions),
		    (SELECT COUNT(*) FROM resume_analyses),
		    (SELECT COALESCE(AVG(final_score), 0) FROM resume_analyses WHERE status = $1)`,
		AnalysisStatusScored,
	).Scan(&s.TotalUsers, &s.TotalJobPostings, &s.TotalSessions, &s.TotalAnalyses, &s.AverageFinalScore)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	return &s, nil
}
