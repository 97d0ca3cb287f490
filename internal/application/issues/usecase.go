package issues

import (
	"context"

	"github.com/jhoicas/issuetrack-api/internal/application/dto"
	"github.com/jhoicas/issuetrack-api/internal/domain"
	"github.com/jhoicas/issuetrack-api/internal/domain/entity"
	"github.com/jhoicas/issuetrack-api/internal/domain/repository"
)

// IssueUseCase issue operations. Mutations run through the TxRunner;
// reads go against the pool-bound repository.
type IssueUseCase struct {
	tx     TxRunner
	issues repository.IssueRepository
}

// NewIssueUseCase builds the use case.
func NewIssueUseCase(tx TxRunner, issues repository.IssueRepository) *IssueUseCase {
	return &IssueUseCase{tx: tx, issues: issues}
}

// Create resolves the product name and validates the reporter inside one
// transaction, then inserts. If either reference is missing, or the
// insert itself violates a constraint, the whole operation fails with
// domain.ErrUnprocessable and nothing is persisted.
func (uc *IssueUseCase) Create(ctx context.Context, in dto.CreateIssueRequest) (*dto.IssueResponse, error) {
	if !in.Severity.Valid() {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.IssueResponse
	err := uc.tx.Run(ctx, func(
		issueRepo repository.IssueRepository,
		productRepo repository.ProductRepository,
		userRepo repository.UserRepository,
	) error {
		product, err := productRepo.GetByName(ctx, in.Product)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrUnprocessable
		}
		reporter, err := userRepo.GetByUsername(ctx, in.Reporter)
		if err != nil {
			return err
		}
		if reporter == nil {
			return domain.ErrUnprocessable
		}
		issue := &entity.Issue{
			Description: in.Description,
			Severity:    in.Severity,
			Status:      entity.StatusNew,
			ProductID:   product.ID,
			Reporter:    reporter.Username,
		}
		if err := issueRepo.Create(ctx, issue); err != nil {
			return err
		}
		out = toIssueResponse(issue, product.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Patch reads the current row and applies only the fields present and
// non-null in the update; an empty update leaves the row untouched and
// applying the same update twice is a no-op the second time. Runs in one
// transaction so a constraint violation on the merged row (e.g. an
// unknown assignee) rolls the read-modify-write back as a whole.
func (uc *IssueUseCase) Patch(ctx context.Context, id int64, in dto.UpdateIssueRequest) (*dto.IssueResponse, error) {
	if in.Severity != nil && !in.Severity.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.Empty() {
		// Nothing to write; still reports a missing row.
		return uc.GetByID(ctx, id)
	}
	var out *dto.IssueResponse
	err := uc.tx.Run(ctx, func(
		issueRepo repository.IssueRepository,
		productRepo repository.ProductRepository,
		userRepo repository.UserRepository,
	) error {
		issue, err := issueRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if issue == nil {
			return domain.ErrNotFound
		}
		if in.Severity != nil {
			issue.Severity = *in.Severity
		}
		if in.Status != nil {
			issue.Status = *in.Status
		}
		if in.Assignee != nil {
			issue.Assignee = in.Assignee
		}
		if err := issueRepo.Update(ctx, issue); err != nil {
			return err
		}
		detail, err := issueRepo.GetDetailByID(ctx, id)
		if err != nil {
			return err
		}
		if detail == nil {
			return domain.ErrNotFound
		}
		out = toDetailResponse(detail)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one issue joined with its product name.
func (uc *IssueUseCase) GetByID(ctx context.Context, id int64) (*dto.IssueResponse, error) {
	detail, err := uc.issues.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return toDetailResponse(detail), nil
}

// List fetches every issue joined with product names.
func (uc *IssueUseCase) List(ctx context.Context) ([]*dto.IssueResponse, error) {
	details, err := uc.issues.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.IssueResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toDetailResponse(d))
	}
	return out, nil
}

func toIssueResponse(i *entity.Issue, productName string) *dto.IssueResponse {
	return &dto.IssueResponse{
		ID:          i.ID,
		Product:     productName,
		Severity:    i.Severity,
		Status:      i.Status,
		Assignee:    i.Assignee,
		Reporter:    i.Reporter,
		Description: i.Description,
	}
}

func toDetailResponse(d *entity.IssueDetail) *dto.IssueResponse {
	return &dto.IssueResponse{
		ID:          d.ID,
		Product:     d.Product,
		Severity:    d.Severity,
		Status:      d.Status,
		Assignee:    d.Assignee,
		Reporter:    d.Reporter,
		Description: d.Description,
	}
}
