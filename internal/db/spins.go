package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAlreadyListened is returned when a spin has already been confirmed.
var ErrAlreadyListened = errors.New("spin already marked listened")

// SpinRepository handles spin database operations.
type SpinRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new spin.
func (r *SpinRepository) Create(ctx context.Context, spin *Spin) error {
	query := `
		INSERT INTO spins (id, user_id, mode, album_id, started_at, listened_at)
		VALUES ($1, $2, $3, $4, $5, NULL)
	`
	_, err := r.pool.Exec(ctx, query,
		spin.ID,
		spin.UserID,
		spin.Mode,
		spin.AlbumID,
		spin.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting spin: %w", err)
	}
	return nil
}

// Get retrieves a spin by ID.
func (r *SpinRepository) Get(ctx context.Context, id uuid.UUID) (*Spin, error) {
	query := `
		SELECT id, user_id, mode, album_id, started_at, listened_at
		FROM spins
		WHERE id = $1
	`
	var spin Spin
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&spin.ID,
		&spin.UserID,
		&spin.Mode,
		&spin.AlbumID,
		&spin.StartedAt,
		&spin.ListenedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying spin: %w", err)
	}
	return &spin, nil
}

// MarkListened sets listened_at on a spin, once. Returns ErrNotFound if the
// spin does not exist for the user and ErrAlreadyListened if listened_at is
// already set.
func (r *SpinRepository) MarkListened(ctx context.Context, userID string, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE spins
		SET listened_at = $3
		WHERE id = $1 AND user_id = $2 AND listened_at IS NULL
	`
	result, err := r.pool.Exec(ctx, query, id, userID, at)
	if err != nil {
		return fmt.Errorf("marking spin listened: %w", err)
	}
	if result.RowsAffected() == 1 {
		return nil
	}

	// Distinguish missing spin from double confirmation.
	spin, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if spin.UserID != userID {
		return ErrNotFound
	}
	return ErrAlreadyListened
}

// RecentAlbumIDs returns the distinct album IDs the user was handed within
// the last N days.
func (r *SpinRepository) RecentAlbumIDs(ctx context.Context, userID string, days int) ([]string, error) {
	query := `
		SELECT DISTINCT album_id
		FROM spins
		WHERE user_id = $1 AND started_at > NOW() - ($2 || ' days')::interval
	`
	rows, err := r.pool.Query(ctx, query, userID, days)
	if err != nil {
		return nil, fmt.Errorf("querying recent spins: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning album id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Counts returns the user's total and listened spin counts.
func (r *SpinRepository) Counts(ctx context.Context, userID string) (total, listened int, err error) {
	query := `
		SELECT COUNT(*), COUNT(listened_at)
		FROM spins
		WHERE user_id = $1
	`
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&total, &listened); err != nil {
		return 0, 0, fmt.Errorf("counting spins: %w", err)
	}
	return total, listened, nil
}

// CountsByMode returns the user's spin counts grouped by discovery mode.
func (r *SpinRepository) CountsByMode(ctx context.Context, userID string) (map[string]int, error) {
	query := `
		SELECT mode, COUNT(*)
		FROM spins
		WHERE user_id = $1
		GROUP BY mode
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("counting spins by mode: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var mode string
		var n int
		if err := rows.Scan(&mode, &n); err != nil {
			return nil, fmt.Errorf("scanning mode count: %w", err)
		}
		counts[mode] = n
	}
	return counts, rows.Err()
}

// ListenedTimes returns the listened_at timestamps of all confirmed spins
// for a user, newest first.
func (r *SpinRepository) ListenedTimes(ctx context.Context, userID string) ([]time.Time, error) {
	query := `
		SELECT listened_at
		FROM spins
		WHERE user_id = $1 AND listened_at IS NOT NULL
		ORDER BY listened_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying listened times: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning listened time: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// UniqueGenreCount counts distinct genres across every album the user has
// been handed.
func (r *SpinRepository) UniqueGenreCount(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT genre)
		FROM spins s
		JOIN albums a ON a.id = s.album_id,
		LATERAL unnest(a.genres) AS genre
		WHERE s.user_id = $1
	`
	var n int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting genres: %w", err)
	}
	return n, nil
}

// MaxListenedAlbumsPerArtist returns the largest number of distinct listened
// albums the user has finished from any single artist.
func (r *SpinRepository) MaxListenedAlbumsPerArtist(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COALESCE(MAX(cnt), 0) FROM (
			SELECT COUNT(DISTINCT s.album_id) AS cnt
			FROM spins s
			JOIN albums a ON a.id = s.album_id
			WHERE s.user_id = $1 AND s.listened_at IS NOT NULL
			GROUP BY a.artist_id
		) per_artist
	`
	var n int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting albums per artist: %w", err)
	}
	return n, nil
}
