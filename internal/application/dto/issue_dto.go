package dto

import "github.com/jhoicas/issuetrack-api/internal/domain/entity"

// CreateIssueRequest input for issue creation. Product is referenced by
// name and the reporter by username; both are resolved transactionally.
type CreateIssueRequest struct {
	Description string          `json:"description" validate:"max=1000"`
	Severity    entity.Severity `json:"severity" validate:"required,oneof=critical medium low"`
	Product     string          `json:"product" validate:"required"`
	Reporter    string          `json:"reporter" validate:"required"`
}

// UpdateIssueRequest partial update. A nil field (absent from the JSON
// body or explicitly null) leaves the stored value untouched.
type UpdateIssueRequest struct {
	Severity *entity.Severity `json:"severity" validate:"omitempty,oneof=critical medium low"`
	Status   *entity.Status   `json:"status" validate:"omitempty,oneof=new in_progress in_review done"`
	Assignee *string          `json:"assignee" validate:"omitempty,max=255"`
}

// Empty reports whether the update carries no fields at all.
func (u UpdateIssueRequest) Empty() bool {
	return u.Severity == nil && u.Status == nil && u.Assignee == nil
}

// IssueResponse issue output joined with its product name.
type IssueResponse struct {
	ID          int64           `json:"id"`
	Product     string          `json:"product"`
	Severity    entity.Severity `json:"severity"`
	Status      entity.Status   `json:"status"`
	Assignee    *string         `json:"assignee"`
	Reporter    string          `json:"reporter"`
	Description string          `json:"description"`
}
