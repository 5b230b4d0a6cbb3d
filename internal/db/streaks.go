package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StreakRepository handles streak database operations.
type StreakRepository struct {
	pool *pgxpool.Pool
}

// Get retrieves a user's streak. Returns ErrNotFound for users who have
// never confirmed a listen.
func (r *StreakRepository) Get(ctx context.Context, userID string) (*Streak, error) {
	query := `
		SELECT user_id, current, longest, last_spin_date, updated_at
		FROM streaks
		WHERE user_id = $1
	`
	var streak Streak
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&streak.UserID,
		&streak.Current,
		&streak.Longest,
		&streak.LastSpinDate,
		&streak.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying streak: %w", err)
	}
	return &streak, nil
}

// Upsert creates or replaces a user's streak row.
func (r *StreakRepository) Upsert(ctx context.Context, streak *Streak) error {
	query := `
		INSERT INTO streaks (user_id, current, longest, last_spin_date, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			current = EXCLUDED.current,
			longest = EXCLUDED.longest,
			last_spin_date = EXCLUDED.last_spin_date,
			updated_at = NOW()
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		streak.UserID,
		streak.Current,
		streak.Longest,
		streak.LastSpinDate,
	).Scan(&streak.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting streak: %w", err)
	}
	return nil
}

// Advance applies a transition function to a user's streak under a row lock,
// so concurrent listened confirmations for the same user serialize instead
// of double-advancing. The row is created first if the user has none.
func (r *StreakRepository) Advance(ctx context.Context, userID string, transition func(Streak) Streak) (*Streak, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning streak transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO streaks (user_id, current, longest, last_spin_date, updated_at)
		VALUES ($1, 0, 0, NULL, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, insert, userID); err != nil {
		return nil, fmt.Errorf("initializing streak: %w", err)
	}

	var streak Streak
	lock := `
		SELECT user_id, current, longest, last_spin_date, updated_at
		FROM streaks
		WHERE user_id = $1
		FOR UPDATE
	`
	err = tx.QueryRow(ctx, lock, userID).Scan(
		&streak.UserID,
		&streak.Current,
		&streak.Longest,
		&streak.LastSpinDate,
		&streak.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("locking streak: %w", err)
	}

	next := transition(streak)
	next.UserID = userID

	update := `
		UPDATE streaks
		SET current = $2, longest = $3, last_spin_date = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at
	`
	err = tx.QueryRow(ctx, update,
		next.UserID,
		next.Current,
		next.Longest,
		next.LastSpinDate,
	).Scan(&next.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("updating streak: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing streak transaction: %w", err)
	}
	return &next, nil
}
