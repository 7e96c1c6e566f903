package usecase

import (
	"context"
	"sync"
	"time"

	"user-service/app/domain"
)

// stubUserRepo is an in-memory port.UserRepository that counts store
// queries so tests can observe cache behavior.
type stubUserRepo struct {
	mu        sync.Mutex
	users     []domain.User
	nextID    int64
	listCalls int
	listErr   error
	insertErr error
	ops       *opLog
}

func newStubUserRepo(ops *opLog) *stubUserRepo {
	return &stubUserRepo{nextID: 1, ops: ops}
}

func (r *stubUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ops != nil {
		r.ops.record("insert")
	}
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	for i := range r.users {
		if r.users[i].Email == user.Email {
			return nil, domain.ErrUserAlreadyExists
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, *user)
	return user, nil
}

func (r *stubUserRepo) ListCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

// stubCache is an in-memory port.UserListingCache with injectable
// faults.
type stubCache struct {
	mu            sync.Mutex
	entry         []domain.User
	hasEntry      bool
	getErr        error
	setErr        error
	invalidateErr error
	ops           *opLog
}

func newStubCache(ops *opLog) *stubCache {
	return &stubCache{ops: ops}
}

func (c *stubCache) GetUsers(ctx context.Context) ([]domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return nil, c.getErr
	}
	if !c.hasEntry {
		return nil, domain.ErrCacheMiss
	}
	out := make([]domain.User, len(c.entry))
	copy(out, c.entry)
	return out, nil
}

func (c *stubCache) SetUsers(ctx context.Context, users []domain.User, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.setErr != nil {
		return c.setErr
	}
	c.entry = make([]domain.User, len(users))
	copy(c.entry, users)
	c.hasEntry = true
	return nil
}

func (c *stubCache) InvalidateUsers(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ops != nil {
		c.ops.record("invalidate")
	}
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	c.entry = nil
	c.hasEntry = false
	return nil
}

func (c *stubCache) HasEntry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasEntry
}

// stubTokenIssuer is a trivial port.TokenIssuer for flow tests
type stubTokenIssuer struct {
	issueErr  error
	verifyErr error
	lastID    int64
}

func (s *stubTokenIssuer) Issue(userID int64) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}
	s.lastID = userID
	return "stub-token", nil
}

func (s *stubTokenIssuer) Verify(token string) (*domain.SessionClaims, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	if token != "stub-token" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.SessionClaims{UserID: s.lastID}, nil
}

// opLog records the order of store and cache operations so tests can
// assert the write-then-invalidate ordering.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) record(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

func (l *opLog) Ops() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.ops))
	copy(out, l.ops)
	return out
}
