package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TrophyRepository handles user trophy database operations. Trophy
// definitions themselves are a static in-code catalog, not rows.
type TrophyRepository struct {
	pool *pgxpool.Pool
}

// EarnedIDs returns the set of trophy IDs the user has already earned.
func (r *TrophyRepository) EarnedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	query := `
		SELECT trophy_id
		FROM user_trophies
		WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying earned trophies: %w", err)
	}
	defer rows.Close()

	earned := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning trophy id: %w", err)
		}
		earned[id] = true
	}
	return earned, rows.Err()
}

// GetForUser returns all of a user's earned trophies, newest first.
func (r *TrophyRepository) GetForUser(ctx context.Context, userID string) ([]UserTrophy, error) {
	query := `
		SELECT user_id, trophy_id, progress, earned_at
		FROM user_trophies
		WHERE user_id = $1
		ORDER BY earned_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user trophies: %w", err)
	}
	defer rows.Close()

	var trophies []UserTrophy
	for rows.Next() {
		var ut UserTrophy
		if err := rows.Scan(&ut.UserID, &ut.TrophyID, &ut.Progress, &ut.EarnedAt); err != nil {
			return nil, fmt.Errorf("scanning user trophy: %w", err)
		}
		trophies = append(trophies, ut)
	}
	return trophies, rows.Err()
}

// Insert records a newly earned trophy. Returns false without error when the
// (user, trophy) pair already exists, so a concurrent award is treated as
// already-earned rather than a failure.
func (r *TrophyRepository) Insert(ctx context.Context, ut *UserTrophy) (bool, error) {
	query := `
		INSERT INTO user_trophies (user_id, trophy_id, progress, earned_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, trophy_id) DO NOTHING
	`
	result, err := r.pool.Exec(ctx, query,
		ut.UserID,
		ut.TrophyID,
		ut.Progress,
		ut.EarnedAt,
	)
	if err != nil {
		return false, fmt.Errorf("inserting user trophy: %w", err)
	}
	return result.RowsAffected() == 1, nil
}
