package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/issuetrack-api/internal/domain"
	"github.com/jhoicas/issuetrack-api/internal/domain/entity"
	"github.com/jhoicas/issuetrack-api/internal/domain/repository"
)

var _ repository.IssueRepository = (*IssueRepo)(nil)

// IssueRepo implements the IssueRepository port over PostgreSQL. Pass the
// pool or a tx (Querier).
type IssueRepo struct {
	q Querier
}

// NewIssueRepository builds the persistence adapter for issues.
func NewIssueRepository(q Querier) *IssueRepo {
	return &IssueRepo{q: q}
}

// Create persists a new issue and fills in the generated ID. The
// foreign-key constraints on product, reporter and assignee are the
// final referee: a violation surfaces as domain.ErrUnprocessable.
func (r *IssueRepo) Create(ctx context.Context, issue *entity.Issue) error {
	query := `
		INSERT INTO issues (description, severity, status, product_id, assignee, reporter)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.q.QueryRow(ctx, query,
		issue.Description, issue.Severity, issue.Status, issue.ProductID, issue.Assignee, issue.Reporter,
	).Scan(&issue.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnprocessable
		}
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

// GetByID fetches the raw issue row; (nil, nil) when absent.
func (r *IssueRepo) GetByID(ctx context.Context, id int64) (*entity.Issue, error) {
	query := `
		SELECT id, description, severity, status, product_id, assignee, reporter
		FROM issues WHERE id = $1`
	var i entity.Issue
	err := r.q.QueryRow(ctx, query, id).Scan(
		&i.ID, &i.Description, &i.Severity, &i.Status, &i.ProductID, &i.Assignee, &i.Reporter,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue by id: %w", err)
	}
	return &i, nil
}

// Update writes the merged row back.
func (r *IssueRepo) Update(ctx context.Context, issue *entity.Issue) error {
	query := `
		UPDATE issues SET description = $2, severity = $3, status = $4, assignee = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, issue.ID, issue.Description, issue.Severity, issue.Status, issue.Assignee)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnprocessable
		}
		return fmt.Errorf("update issue: %w", err)
	}
	return nil
}

// GetDetailByID joins against products to surface the product name.
func (r *IssueRepo) GetDetailByID(ctx context.Context, id int64) (*entity.IssueDetail, error) {
	query := `
		SELECT i.id, i.description, i.severity, i.status, p.name, i.assignee, i.reporter
		FROM issues i JOIN products p ON p.id = i.product_id
		WHERE i.id = $1`
	var d entity.IssueDetail
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Description, &d.Severity, &d.Status, &d.Product, &d.Assignee, &d.Reporter,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue detail: %w", err)
	}
	return &d, nil
}

// ListDetails returns every issue joined against products.
func (r *IssueRepo) ListDetails(ctx context.Context) ([]*entity.IssueDetail, error) {
	query := `
		SELECT i.id, i.description, i.severity, i.status, p.name, i.assignee, i.reporter
		FROM issues i JOIN products p ON p.id = i.product_id
		ORDER BY i.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()
	var list []*entity.IssueDetail
	for rows.Next() {
		var d entity.IssueDetail
		if err := rows.Scan(&d.ID, &d.Description, &d.Severity, &d.Status, &d.Product, &d.Assignee, &d.Reporter); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
