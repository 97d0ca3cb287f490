package repository

import (
	"context"

	"github.com/jhoicas/issuetrack-api/internal/domain/entity"
)

// IssueRepository persistence port for issues.
type IssueRepository interface {
	// Create persists a new issue and fills in its generated ID. Returns
	// domain.ErrUnprocessable when a foreign key (product, reporter,
	// assignee) does not resolve.
	Create(ctx context.Context, issue *entity.Issue) error
	// GetByID returns (nil, nil) when no row matches.
	GetByID(ctx context.Context, id int64) (*entity.Issue, error)
	// Update writes the merged row back. Returns domain.ErrUnprocessable
	// on a foreign-key violation (e.g. unknown assignee).
	Update(ctx context.Context, issue *entity.Issue) error
	// GetDetailByID joins against products; (nil, nil) when no row matches.
	GetDetailByID(ctx context.Context, id int64) (*entity.IssueDetail, error)
	// ListDetails returns every issue joined against products. No
	// pagination; full-table materialization is a known limitation.
	ListDetails(ctx context.Context) ([]*entity.IssueDetail, error)
}
