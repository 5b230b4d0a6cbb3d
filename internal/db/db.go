// Package db provides PostgreSQL database access for Spindle.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors.
var (
	ErrNotFound = errors.New("not found")
)

// DB holds the connection pool and the repositories built over it. The
// repositories are constructed once alongside the pool and shared.
type DB struct {
	pool *pgxpool.Pool

	users    *UserRepository
	sessions *SessionRepository
	albums   *AlbumRepository
	spins    *SpinRepository
	streaks  *StreakRepository
	trophies *TrophyRepository
}

// New connects to the database and verifies the connection.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{
		pool:     pool,
		users:    &UserRepository{pool: pool},
		sessions: &SessionRepository{pool: pool},
		albums:   &AlbumRepository{pool: pool},
		spins:    &SpinRepository{pool: pool},
		streaks:  &StreakRepository{pool: pool},
		trophies: &TrophyRepository{pool: pool},
	}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Users returns the user repository.
func (db *DB) Users() *UserRepository { return db.users }

// Sessions returns the session repository.
func (db *DB) Sessions() *SessionRepository { return db.sessions }

// Albums returns the album repository.
func (db *DB) Albums() *AlbumRepository { return db.albums }

// Spins returns the spin repository.
func (db *DB) Spins() *SpinRepository { return db.spins }

// Streaks returns the streak repository.
func (db *DB) Streaks() *StreakRepository { return db.streaks }

// Trophies returns the trophy repository.
func (db *DB) Trophies() *TrophyRepository { return db.trophies }
