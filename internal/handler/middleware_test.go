package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/taskflow/internal/auth"
	"github.com/msomdec/taskflow/internal/handler"
	"github.com/msomdec/taskflow/internal/repository/sqlite"
	"github.com/msomdec/taskflow/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests"

func newTestServices(t *testing.T) (*service.AuthService, *service.TaskService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	hasher := auth.NewPasswordHasher(4)
	tokens := auth.NewTokenCodec(testJWTSecret, time.Hour)
	return service.NewAuthService(db.Users(), hasher, tokens),
		service.NewTaskService(db.Tasks(), db.Users())
}

func registerAndLogin(t *testing.T, authSvc *service.AuthService, email string) string {
	t.Helper()
	ctx := context.Background()
	if _, err := authSvc.Register(ctx, email, "password123"); err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	token, err := authSvc.Login(ctx, email, "password123")
	if err != nil {
		t.Fatalf("Login %s: %v", email, err)
	}
	return token
}

func TestRequireAuth_ValidToken(t *testing.T) {
	authSvc, _ := newTestServices(t)
	token := registerAndLogin(t, authSvc, "valid@example.com")

	var gotEmail string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := handler.UserFromContext(r.Context()); user != nil {
			gotEmail = user.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(authSvc, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotEmail != "valid@example.com" {
		t.Fatalf("expected user in context, got %q", gotEmail)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	authSvc, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	handler.RequireAuth(authSvc, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	authSvc, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	for _, header := range []string{
		"Bearer not-a-jwt",
		"Basic dXNlcjpwYXNz",
		"Bearer",
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		handler.RequireAuth(authSvc, inner).ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	authSvc, _ := newTestServices(t)

	// An already-expired token signed with the same secret.
	token, err := auth.NewTokenCodec(testJWTSecret, -time.Minute).Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(authSvc, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.RequestLogger(inner).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
}
