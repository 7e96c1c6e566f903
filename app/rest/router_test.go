package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"user-service/app/domain"
	"user-service/app/driver/token"
	"user-service/app/rest"
	"user-service/app/usecase"
	"user-service/app/utils/logger"
	"user-service/app/utils/security"
)

// memoryUserRepo is an in-memory user store with a query counter so the
// tests can observe whether the cache or the store served a listing.
type memoryUserRepo struct {
	mu        sync.Mutex
	users     []domain.User
	nextID    int64
	listCalls int
}

func (r *memoryUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
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

func (r *memoryUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
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

func (r *memoryUserRepo) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == user.Email {
			return nil, domain.ErrUserAlreadyExists
		}
	}
	if r.nextID == 0 {
		r.nextID = 1
	}
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, *user)
	return user, nil
}

func (r *memoryUserRepo) ListCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

// memoryCache is an in-memory TTL cache for the listing entry
type memoryCache struct {
	mu       sync.Mutex
	entry    []domain.User
	deadline time.Time
	hasEntry bool
}

func (c *memoryCache) GetUsers(ctx context.Context) ([]domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasEntry || time.Now().After(c.deadline) {
		return nil, domain.ErrCacheMiss
	}
	out := make([]domain.User, len(c.entry))
	copy(out, c.entry)
	return out, nil
}

func (c *memoryCache) SetUsers(ctx context.Context, users []domain.User, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = make([]domain.User, len(users))
	copy(c.entry, users)
	c.deadline = time.Now().Add(ttl)
	c.hasEntry = true
	return nil
}

func (c *memoryCache) InvalidateUsers(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
	c.hasEntry = false
	return nil
}

// healthyDB satisfies the readiness check
type healthyDB struct{}

func (healthyDB) HealthCheck(ctx context.Context) error { return nil }

// newTestServer wires real usecases, a real token issuer and a real
// password hasher over the in-memory store and cache.
func newTestServer(t *testing.T) (*echo.Echo, *memoryUserRepo) {
	t.Helper()

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	hasher, err := security.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	issuer, err := token.NewJWTIssuer(token.JWTConfig{
		Secret: "router-test-secret-16+",
		TTL:    time.Hour,
	})
	require.NoError(t, err)

	repo := &memoryUserRepo{}
	cache := &memoryCache{}

	e := rest.NewRouter(rest.RouterConfig{
		Logger:      testLogger,
		UserUsecase: usecase.NewUserUseCase(repo, cache, hasher, time.Minute, testLogger),
		AuthUsecase: usecase.NewAuthUseCase(repo, issuer, hasher, testLogger),
		DB:          healthyDB{},
	})

	return e, repo
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_EndToEndScenario(t *testing.T) {
	e, _ := newTestServer(t)

	// Register.
	rec := doJSON(t, e, http.MethodPost, "/register",
		`{"name":"A","email":"a@x.com","password":"p"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"A","email":"a@x.com"}`, rec.Body.String())

	// Wrong password answers the same generic 401 as an unknown email.
	wrongPassword := doJSON(t, e, http.MethodPost, "/login",
		`{"email":"a@x.com","password":"wrong"}`, nil)
	unknownEmail := doJSON(t, e, http.MethodPost, "/login",
		`{"email":"nobody@x.com","password":"p"}`, nil)
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())

	// Correct credentials return a token.
	rec = doJSON(t, e, http.MethodPost, "/login",
		`{"email":"a@x.com","password":"p"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	// Profile with the token.
	rec = doJSON(t, e, http.MethodGet, "/profile", "", map[string]string{
		echo.HeaderAuthorization: "Bearer " + login.Token,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"A","email":"a@x.com"}`, rec.Body.String())

	// Profile without a header.
	rec = doJSON(t, e, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Profile with a tampered token.
	rec = doJSON(t, e, http.MethodGet, "/profile", "", map[string]string{
		echo.HeaderAuthorization: "Bearer " + login.Token + "x",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CacheIdempotenceAndInvalidation(t *testing.T) {
	e, repo := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/users",
		`{"name":"A","email":"a@x.com","password":"p"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Two consecutive listings inside the TTL window are byte-identical
	// and only the first one hits the store.
	first := doJSON(t, e, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, first.Code)
	callsAfterFirst := repo.ListCalls()

	second := doJSON(t, e, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, callsAfterFirst, repo.ListCalls())

	// A write invalidates the entry, so the next listing reflects it.
	rec = doJSON(t, e, http.MethodPost, "/users",
		`{"name":"B","email":"b@x.com","password":"p"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	third := doJSON(t, e, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, third.Code)
	assert.Contains(t, third.Body.String(), "b@x.com")
	assert.Greater(t, repo.ListCalls(), callsAfterFirst)
}

func TestRouter_DuplicateEmailConflict(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/register",
		`{"name":"A","email":"a@x.com","password":"p"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/register",
		`{"name":"A again","email":"a@x.com","password":"p"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_MissingFields(t *testing.T) {
	e, _ := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "register without name", path: "/register", body: `{"email":"a@x.com","password":"p"}`},
		{name: "register without email", path: "/register", body: `{"name":"A","password":"p"}`},
		{name: "register without password", path: "/register", body: `{"name":"A","email":"a@x.com"}`},
		{name: "login without email", path: "/login", body: `{"password":"p"}`},
		{name: "login without password", path: "/login", body: `{"email":"a@x.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, tt.path, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRouter_HealthEndpoints(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{"/health", "/health/ready", "/health/live"} {
		rec := doJSON(t, e, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, fmt.Sprintf("path %s", path))
	}
}
