package issues

import (
	"context"

	"github.com/jhoicas/issuetrack-api/internal/domain/repository"
)

// TxRunner runs fn with repositories bound to one transaction: the unit
// of work commits when fn returns nil and rolls back otherwise, so a
// multi-step mutation persists all or nothing.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		issueRepo repository.IssueRepository,
		productRepo repository.ProductRepository,
		userRepo repository.UserRepository,
	) error) error
}
