package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlbumRepository handles album cache database operations.
type AlbumRepository struct {
	pool *pgxpool.Pool
}

// Upsert creates or updates a cached album by catalog ID.
func (r *AlbumRepository) Upsert(ctx context.Context, album *Album) error {
	query := `
		INSERT INTO albums (id, name, artist, artist_id, year, cover_url, genres, track_count, album_type, popularity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			artist = EXCLUDED.artist,
			artist_id = EXCLUDED.artist_id,
			year = EXCLUDED.year,
			cover_url = EXCLUDED.cover_url,
			genres = EXCLUDED.genres,
			track_count = EXCLUDED.track_count,
			album_type = EXCLUDED.album_type,
			popularity = EXCLUDED.popularity
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query,
		album.ID,
		album.Name,
		album.Artist,
		album.ArtistID,
		album.Year,
		album.CoverURL,
		album.Genres,
		album.TrackCount,
		album.AlbumType,
		album.Popularity,
	).Scan(&album.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting album: %w", err)
	}
	return nil
}

// Get retrieves a cached album by ID.
func (r *AlbumRepository) Get(ctx context.Context, id string) (*Album, error) {
	query := `
		SELECT id, name, artist, artist_id, year, cover_url, genres, track_count, album_type, popularity, created_at
		FROM albums
		WHERE id = $1
	`
	var album Album
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&album.ID,
		&album.Name,
		&album.Artist,
		&album.ArtistID,
		&album.Year,
		&album.CoverURL,
		&album.Genres,
		&album.TrackCount,
		&album.AlbumType,
		&album.Popularity,
		&album.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying album: %w", err)
	}
	return &album, nil
}
