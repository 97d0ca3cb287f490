package issues_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/issuetrack-api/internal/application/dto"
	"github.com/jhoicas/issuetrack-api/internal/application/issues"
	"github.com/jhoicas/issuetrack-api/internal/domain"
	"github.com/jhoicas/issuetrack-api/internal/domain/entity"
	"github.com/jhoicas/issuetrack-api/internal/infrastructure/memory"
)

func newIssueUseCase(t *testing.T) (*issues.IssueUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		Username:     "test",
		Fullname:     "test van holland",
		PasswordHash: "irrelevant",
		Active:       true,
	}))
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{Name: "product1"}))
	return issues.NewIssueUseCase(store.TxRunner(), store.Issues()), store
}

func createIssue(t *testing.T, uc *issues.IssueUseCase) *dto.IssueResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateIssueRequest{
		Description: "this is a test description",
		Severity:    entity.SeverityCritical,
		Product:     "product1",
		Reporter:    "test",
	})
	require.NoError(t, err)
	return out
}

func TestCreateIssue(t *testing.T) {
	uc, store := newIssueUseCase(t)

	out := createIssue(t, uc)

	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "product1", out.Product, "response carries the product name, not its id")
	assert.Equal(t, entity.SeverityCritical, out.Severity)
	assert.Equal(t, entity.StatusNew, out.Status, "status defaults to new")
	assert.Equal(t, "test", out.Reporter)
	assert.Nil(t, out.Assignee)
	assert.Equal(t, 1, store.IssueCount())
}

func TestCreateIssue_UnknownProduct(t *testing.T) {
	uc, store := newIssueUseCase(t)

	_, err := uc.Create(context.Background(), dto.CreateIssueRequest{
		Description: "d",
		Severity:    entity.SeverityCritical,
		Product:     "wrong product",
		Reporter:    "test",
	})
	assert.ErrorIs(t, err, domain.ErrUnprocessable)
	assert.Equal(t, 0, store.IssueCount(), "nothing may be persisted")
}

func TestCreateIssue_UnknownReporter(t *testing.T) {
	uc, store := newIssueUseCase(t)

	_, err := uc.Create(context.Background(), dto.CreateIssueRequest{
		Description: "d",
		Severity:    entity.SeverityCritical,
		Product:     "product1",
		Reporter:    "nobody",
	})
	assert.ErrorIs(t, err, domain.ErrUnprocessable)
	assert.Equal(t, 0, store.IssueCount(), "nothing may be persisted")
}

func TestCreateIssue_UnknownSeverity(t *testing.T) {
	uc, _ := newIssueUseCase(t)

	_, err := uc.Create(context.Background(), dto.CreateIssueRequest{
		Severity: "catastrophic",
		Product:  "product1",
		Reporter: "test",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPatchIssue_EmptyUpdateIsNoOp(t *testing.T) {
	uc, store := newIssueUseCase(t)
	created := createIssue(t, uc)

	before, ok := store.IssueByID(created.ID)
	require.True(t, ok)

	out, err := uc.Patch(context.Background(), created.ID, dto.UpdateIssueRequest{})
	require.NoError(t, err)
	assert.Equal(t, created, out)

	after, ok := store.IssueByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, before, after, "empty update must leave every field unchanged")
}

func TestPatchIssue_AppliesOnlySuppliedFields(t *testing.T) {
	uc, store := newIssueUseCase(t)
	created := createIssue(t, uc)

	status := entity.StatusInReview
	out, err := uc.Patch(context.Background(), created.ID, dto.UpdateIssueRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusInReview, out.Status)
	assert.Equal(t, created.Severity, out.Severity)
	assert.Equal(t, created.Description, out.Description)
	assert.Equal(t, created.Reporter, out.Reporter)
	assert.Nil(t, out.Assignee)

	row, ok := store.IssueByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, entity.StatusInReview, row.Status)
	assert.Equal(t, entity.SeverityCritical, row.Severity)
}

func TestPatchIssue_Idempotent(t *testing.T) {
	uc, store := newIssueUseCase(t)
	created := createIssue(t, uc)

	severity := entity.SeverityMedium
	status := entity.StatusDone
	upd := dto.UpdateIssueRequest{Severity: &severity, Status: &status}

	_, err := uc.Patch(context.Background(), created.ID, upd)
	require.NoError(t, err)
	once, ok := store.IssueByID(created.ID)
	require.True(t, ok)

	_, err = uc.Patch(context.Background(), created.ID, upd)
	require.NoError(t, err)
	twice, ok := store.IssueByID(created.ID)
	require.True(t, ok)

	assert.Equal(t, once, twice, "applying the same update twice equals applying it once")
}

func TestPatchIssue_AssigneeMustExist(t *testing.T) {
	uc, store := newIssueUseCase(t)
	created := createIssue(t, uc)
	before, ok := store.IssueByID(created.ID)
	require.True(t, ok)

	ghost := "ghost"
	_, err := uc.Patch(context.Background(), created.ID, dto.UpdateIssueRequest{Assignee: &ghost})
	assert.ErrorIs(t, err, domain.ErrUnprocessable)

	after, ok := store.IssueByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, before, after, "failed update must roll back as a whole")
}

func TestPatchIssue_NotFound(t *testing.T) {
	uc, _ := newIssueUseCase(t)

	status := entity.StatusDone
	_, err := uc.Patch(context.Background(), 42, dto.UpdateIssueRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetIssueByID(t *testing.T) {
	uc, _ := newIssueUseCase(t)
	created := createIssue(t, uc)

	out, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, out)
}

func TestGetIssueByID_NotFound(t *testing.T) {
	uc, _ := newIssueUseCase(t)

	_, err := uc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListIssues(t *testing.T) {
	uc, _ := newIssueUseCase(t)
	for i := 0; i < 4; i++ {
		createIssue(t, uc)
	}

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 4)
	for _, issue := range out {
		assert.Equal(t, "product1", issue.Product)
	}
}
