package entity

// Severity levels for an issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Status values an issue moves through.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDone       Status = "done"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusInReview, StatusDone:
		return true
	}
	return false
}

// IssueDetail is the read shape joined against products: callers see the
// product name, not its id.
type IssueDetail struct {
	ID          int64
	Description string
	Severity    Severity
	Status      Status
	Product     string
	Assignee    *string
	Reporter    string
}

// Issue references a Product and up to two Users. ProductID and Reporter
// must exist at creation time; Assignee, when set, is enforced by the
// foreign-key constraint at the storage layer.
type Issue struct {
	ID          int64
	Description string
	Severity    Severity
	Status      Status // defaults to StatusNew
	ProductID   int64
	Assignee    *string
	Reporter    string
}
