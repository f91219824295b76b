package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/N30R4BB1t/login-register/internal/core/domain"
	"github.com/N30R4BB1t/login-register/internal/core/service"
)

// memoryUserRepo is a store with the same atomic uniqueness semantics the
// real engines provide, enough to run the full HTTP surface in-process.
type memoryUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	stored := *user
	stored.ID = strconv.FormatInt(r.nextID, 10)
	stored.CreatedAt = time.Now().UTC()
	r.users[stored.ID] = &stored

	created := stored
	created.PasswordHash = ""
	return &created, nil
}

func (r *memoryUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []domain.User{}
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[strconv.FormatInt(id, 10)]; ok {
			clone := *u
			clone.PasswordHash = ""
			users = append(users, clone)
		}
	}
	return users, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) Update(_ context.Context, id, name, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && other.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}
	u.Name, u.Email = name, email
	clone := *u
	clone.PasswordHash = ""
	return &clone, nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	tokens := service.NewJWTManager("secret", time.Hour)
	users := service.NewUserService(
		newMemoryUserRepo(),
		service.NewBcryptHasher(bcrypt.MinCost),
		tokens,
		nil,
		zerolog.Nop(),
	)
	return NewRouter(RouterConfig{
		Users:   users,
		Tokens:  tokens,
		Metrics: prometheus.NewRegistry(),
		Log:     zerolog.Nop(),
	})
}

func doJSON(t *testing.T, h http.Handler, method, target, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func TestAPI_RegisterLoginCRUDLifecycle(t *testing.T) {
	h := newTestRouter(t)

	// Register.
	rec, body := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		`{"name":"Ana","email":"ana@x.com","password":"secret123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register: missing token")
	}
	user, _ := body["user"].(map[string]any)
	id, _ := user["id"].(string)
	if id == "" {
		t.Fatalf("register: missing user id")
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("register: response leaked a password field")
	}

	// Login with the same credentials; token decodes to the same user.
	rec, body = doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@x.com","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	loginToken, _ := body["token"].(string)
	identity, err := service.NewJWTManager("secret", time.Hour).Validate(loginToken)
	if err != nil {
		t.Fatalf("login token invalid: %v", err)
	}
	if identity.UserID != id {
		t.Fatalf("login token subject %s, want %s", identity.UserID, id)
	}

	// Update name, keep email.
	rec, body = doJSON(t, h, http.MethodPut, "/api/users/"+id, token,
		`{"name":"Ana B","email":"ana@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	if data["name"] != "Ana B" || data["email"] != "ana@x.com" || data["id"] != id {
		t.Fatalf("update: unexpected record %v", data)
	}

	// Delete, then the lookup reports not-found.
	rec, _ = doJSON(t, h, http.MethodDelete, "/api/users/"+id, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec, _ = doJSON(t, h, http.MethodGet, "/api/users/"+id, token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestAPI_LoginFailuresAreIndistinguishable(t *testing.T) {
	h := newTestRouter(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		`{"name":"Ana","email":"ana@x.com","password":"secret123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	wrongPw, _ := doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@x.com","password":"wrong-password"}`)
	noUser, _ := doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		`{"email":"ghost@x.com","password":"wrong-password"}`)

	if wrongPw.Code != http.StatusUnauthorized || noUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPw.Code, noUser.Code)
	}
	if wrongPw.Body.String() != noUser.Body.String() {
		t.Fatalf("login failure bodies differ: %q vs %q", wrongPw.Body.String(), noUser.Body.String())
	}
}

func TestAPI_DuplicateRegistrationConflicts(t *testing.T) {
	h := newTestRouter(t)

	first, _ := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		`{"name":"Ana","email":"ana@x.com","password":"secret123"}`)
	second, _ := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		`{"name":"Bea","email":"ana@x.com","password":"secret456"}`)

	if first.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", first.Code)
	}
	if second.Code != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", second.Code)
	}
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/1"},
		{http.MethodPut, "/api/users/1"},
		{http.MethodDelete, "/api/users/1"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s %s", tc.method, tc.target), func(t *testing.T) {
			rec, _ := doJSON(t, h, tc.method, tc.target, "", "")
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 without token, got %d", rec.Code)
			}
		})
	}
}

func TestAPI_ExpiredTokenIsUnauthenticated(t *testing.T) {
	h := newTestRouter(t)

	expired, err := service.NewJWTManager("secret", -time.Minute).Issue(&domain.User{ID: "1", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	rec, body := doJSON(t, h, http.MethodGet, "/api/users", expired, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
	if body["message"] != "unauthenticated" {
		t.Fatalf("expected collapsed unauthenticated message, got %v", body["message"])
	}
}

func TestAPI_HealthEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	// No checks registered: readiness reports ok with no dependencies.
	rec, _ = doJSON(t, h, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
}
