// Package favorites stores which playgrounds a user has bookmarked.
package favorites

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var QueryTimeoutDuration = time.Second * 5

type Store interface {
	Add(ctx context.Context, userID, playgroundID int64) error
	Remove(ctx context.Context, userID, playgroundID int64) error
	ListPlaygroundIDs(ctx context.Context, userID int64) ([]int64, error)
	IsFavorite(ctx context.Context, userID, playgroundID int64) (bool, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Add(ctx context.Context, userID, playgroundID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO favorites (user_id, playground_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, userID, playgroundID)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *Repository) Remove(ctx context.Context, userID, playgroundID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND playground_id = $2`, userID, playgroundID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// ListPlaygroundIDs returns the user's favorites, most recently added
// first. The caller resolves the ids through the playground read path so
// favorites share the cache and ranking pipeline.
func (r *Repository) ListPlaygroundIDs(ctx context.Context, userID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT playground_id
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) IsFavorite(ctx context.Context, userID, playgroundID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE user_id = $1 AND playground_id = $2
		)`, userID, playgroundID).Scan(&exists)
	return exists, err
}
