package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/issuetrack-api/internal/application/issues"
	"github.com/jhoicas/issuetrack-api/internal/domain/repository"
)

var _ issues.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to it,
// and commits; any failure rolls the whole unit back. The deferred
// rollback is a no-op after a successful commit.
func (r *TxRunner) Run(ctx context.Context, fn func(
	issueRepo repository.IssueRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	issueRepo := NewIssueRepository(tx)
	productRepo := NewProductRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(issueRepo, productRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
