package comments

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (s *Repository) Create(ctx context.Context, c *Comment) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRow(ctx, `
		INSERT INTO comments (playground_id, content, rating, author)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		c.PlaygroundID,
		c.Content,
		c.Rating,
		c.Author,
	).Scan(&c.ID, &c.CreatedAt)
}

// ListByPlayground returns comments newest first.
func (s *Repository) ListByPlayground(ctx context.Context, playgroundID int64) ([]Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, playground_id, content, rating, author, created_at
		FROM comments
		WHERE playground_id = $1
		ORDER BY created_at DESC`, playgroundID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PlaygroundID, &c.Content, &c.Rating, &c.Author, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Repository) Stats(ctx context.Context, playgroundID int64) (int, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		total   int
		average float64
	)
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(id), COALESCE(AVG(rating), 0)
		FROM comments
		WHERE playground_id = $1`, playgroundID).Scan(&total, &average)
	return total, average, err
}
