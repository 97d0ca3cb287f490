// Package memory provides in-memory implementations of the persistence
// ports plus a TxRunner with snapshot rollback. Used by tests and local
// runs without PostgreSQL; concurrent transactions are not isolated.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/issuetrack-api/internal/application/issues"
	"github.com/jhoicas/issuetrack-api/internal/domain"
	"github.com/jhoicas/issuetrack-api/internal/domain/entity"
	"github.com/jhoicas/issuetrack-api/internal/domain/repository"
)

// Store holds all three entity maps behind one mutex.
type Store struct {
	mu            sync.Mutex
	users         map[string]entity.User
	products      map[int64]entity.Product
	issueRows     map[int64]entity.Issue
	nextProductID int64
	nextIssueID   int64
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		products:  make(map[int64]entity.Product),
		issueRows: make(map[int64]entity.Issue),
	}
}

// Users returns the user repository view.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Products returns the product repository view.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Issues returns the issue repository view.
func (s *Store) Issues() repository.IssueRepository { return &issueRepo{s: s} }

// TxRunner returns a runner that snapshots the store and restores it when
// the callback fails, so multi-step mutations stay all-or-nothing.
func (s *Store) TxRunner() issues.TxRunner { return &txRunner{s: s} }

// UserCount reports the number of stored users (test assertions).
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// IssueCount reports the number of stored issues (test assertions).
func (s *Store) IssueCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.issueRows)
}

// SetActive flips a user's active flag in place.
func (s *Store) SetActive(username string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[username]; ok {
		u.Active = active
		s.users[username] = u
	}
}

// IssueByID returns a copy of the raw issue row (test assertions).
func (s *Store) IssueByID(id int64) (entity.Issue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.issueRows[id]
	return cloneIssue(i), ok
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.Username]; ok {
		return domain.ErrConflict
	}
	r.s.users[user.Username] = *user
	return nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Name == product.Name {
			return domain.ErrConflict
		}
	}
	r.s.nextProductID++
	product.ID = r.s.nextProductID
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Name == name {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out := p
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

type issueRepo struct{ s *Store }

// Create enforces the same referential rules the SQL schema does.
func (r *issueRepo) Create(_ context.Context, issue *entity.Issue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkReferences(issue); err != nil {
		return err
	}
	r.s.nextIssueID++
	issue.ID = r.s.nextIssueID
	if issue.Status == "" {
		issue.Status = entity.StatusNew
	}
	r.s.issueRows[issue.ID] = cloneIssue(*issue)
	return nil
}

func (r *issueRepo) GetByID(_ context.Context, id int64) (*entity.Issue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.issueRows[id]
	if !ok {
		return nil, nil
	}
	out := cloneIssue(i)
	return &out, nil
}

func (r *issueRepo) Update(_ context.Context, issue *entity.Issue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.issueRows[issue.ID]; !ok {
		return nil
	}
	if err := r.s.checkReferences(issue); err != nil {
		return err
	}
	r.s.issueRows[issue.ID] = cloneIssue(*issue)
	return nil
}

func (r *issueRepo) GetDetailByID(_ context.Context, id int64) (*entity.IssueDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.issueRows[id]
	if !ok {
		return nil, nil
	}
	d := r.s.detail(i)
	return &d, nil
}

func (r *issueRepo) ListDetails(_ context.Context) ([]*entity.IssueDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.IssueDetail, 0, len(r.s.issueRows))
	for _, i := range r.s.issueRows {
		d := r.s.detail(i)
		list = append(list, &d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// checkReferences mirrors the foreign-key constraints. Caller holds the lock.
func (s *Store) checkReferences(issue *entity.Issue) error {
	if _, ok := s.products[issue.ProductID]; !ok {
		return domain.ErrUnprocessable
	}
	if _, ok := s.users[issue.Reporter]; !ok {
		return domain.ErrUnprocessable
	}
	if issue.Assignee != nil {
		if _, ok := s.users[*issue.Assignee]; !ok {
			return domain.ErrUnprocessable
		}
	}
	return nil
}

// detail joins an issue row with its product name. Caller holds the lock.
func (s *Store) detail(i entity.Issue) entity.IssueDetail {
	c := cloneIssue(i)
	return entity.IssueDetail{
		ID:          c.ID,
		Description: c.Description,
		Severity:    c.Severity,
		Status:      c.Status,
		Product:     s.products[c.ProductID].Name,
		Assignee:    c.Assignee,
		Reporter:    c.Reporter,
	}
}

func cloneIssue(i entity.Issue) entity.Issue {
	if i.Assignee != nil {
		a := *i.Assignee
		i.Assignee = &a
	}
	return i
}

type txRunner struct{ s *Store }

// Run snapshots the store, executes fn and restores the snapshot when fn
// fails, emulating a rolled-back transaction.
func (t *txRunner) Run(ctx context.Context, fn func(
	issueRepo repository.IssueRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) error) error {
	snap := t.s.snapshot()
	if err := fn(t.s.Issues(), t.s.Products(), t.s.Users()); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	users         map[string]entity.User
	products      map[int64]entity.Product
	issueRows     map[int64]entity.Issue
	nextProductID int64
	nextIssueID   int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		users:         make(map[string]entity.User, len(s.users)),
		products:      make(map[int64]entity.Product, len(s.products)),
		issueRows:     make(map[int64]entity.Issue, len(s.issueRows)),
		nextProductID: s.nextProductID,
		nextIssueID:   s.nextIssueID,
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.issueRows {
		snap.issueRows[k] = cloneIssue(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.products = snap.products
	s.issueRows = snap.issueRows
	s.nextProductID = snap.nextProductID
	s.nextIssueID = snap.nextIssueID
}
