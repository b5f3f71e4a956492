package storage

import (
	"context"
	"fmt"

	"parcacote/internal/domain/comments"
	"parcacote/internal/domain/favorites"
	"parcacote/internal/domain/playgrounds"
	"parcacote/internal/domain/pushtokens"
	"parcacote/internal/domain/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool        *pgxpool.Pool
	Users       users.Store
	Playgrounds playgrounds.Store
	Comments    comments.Store
	Favorites   favorites.Store
	PushTokens  pushtokens.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:        db,
		Users:       users.NewRepository(db),
		Playgrounds: playgrounds.NewRepository(db),
		Comments:    comments.NewRepository(db),
		Favorites:   favorites.NewRepository(db),
		PushTokens:  pushtokens.NewRepository(db),
	}
}

// WithSubmissionTx runs a playground submission as one atomic unit: base
// row, image rows and equipment associations either all land or none do.
func (c *Container) WithSubmissionTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx) // safe even if already committed
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
