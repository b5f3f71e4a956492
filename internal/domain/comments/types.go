package comments

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("comment not found")
	QueryTimeoutDuration = time.Second * 5
)

// Comment is a visitor comment with a star rating on one playground.
// Author is a display name, not a user reference; anonymous visitors can
// comment too.
type Comment struct {
	ID           int64     `json:"id"`
	PlaygroundID int64     `json:"playground_id"`
	Content      string    `json:"content"`
	Rating       int       `json:"rating"` // 1-5
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
}

type Store interface {
	Create(ctx context.Context, c *Comment) error
	ListByPlayground(ctx context.Context, playgroundID int64) ([]Comment, error)
	Stats(ctx context.Context, playgroundID int64) (total int, average float64, err error)
}
