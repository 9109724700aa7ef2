package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/studydesk-app/studydesk/internal/database"
	"github.com/studydesk-app/studydesk/internal/store"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := store.NewUserStore(db).Create("u1@example.com", "User One", string(hash)); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	logger := slog.New(slog.DiscardHandler)
	srv := New(db, Config{JWTSecret: "server-test-secret"}, logger)
	return srv.Router()
}

func login(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": "u1@example.com", "password": "correct horse"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("login did not set a token cookie")
	return nil
}

// TestAssignmentLifecycle walks the full authenticated flow: login, save,
// fetch, unauthenticated rejection, delete, and the post-delete 404.
func TestAssignmentLifecycle(t *testing.T) {
	router := setupTestServer(t)
	cookie := login(t, router)

	// Save an assignment.
	body, _ := json.Marshal(map[string]string{"question": "Q1", "answer": "A1"})
	req := httptest.NewRequest("POST", "/api/assignments", bytes.NewReader(body))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Assignment struct {
			ID       int64  `json:"id"`
			Question string `json:"question"`
			Answer   string `json:"answer"`
		} `json:"assignment"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id := created.Assignment.ID

	// Fetch with the cookie.
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/assignments/%d", id), nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d: %s", rec.Code, rec.Body.String())
	}
	var fetched struct {
		Assignment struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		} `json:"assignment"`
	}
	json.NewDecoder(rec.Body).Decode(&fetched)
	if fetched.Assignment.Question != "Q1" || fetched.Assignment.Answer != "A1" {
		t.Errorf("fetched %q/%q, want Q1/A1", fetched.Assignment.Question, fetched.Assignment.Answer)
	}

	// Fetch without a cookie is rejected.
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/assignments/%d", id), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no-cookie get status = %d, want 401", rec.Code)
	}

	// Delete with the cookie.
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/assignments/%d", id), nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", rec.Code, rec.Body.String())
	}

	// Gone afterwards.
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/assignments/%d", id), nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("post-delete get status = %d, want 404", rec.Code)
	}
}

func TestProtectedRoutesRejectWithoutCookie(t *testing.T) {
	router := setupTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{"POST", "/api/assignments"},
		{"GET", "/api/assignments"},
		{"GET", "/api/assignments/1"},
		{"DELETE", "/api/assignments/1"},
		{"GET", "/api/auth/me"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, bytes.NewReader([]byte("{}")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestMeThroughRouter(t *testing.T) {
	router := setupTestServer(t)
	cookie := login(t, router)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.User.Email != "u1@example.com" {
		t.Errorf("email = %q", resp.User.Email)
	}
}

func TestHealth(t *testing.T) {
	router := setupTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	router := setupTestServer(t)

	body := []byte(`{"email":"u1@example.com","password":"wrong"}`)
	var last int
	for i := 0; i < 12; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
		req.RemoteAddr = "198.51.100.7:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("12th login status = %d, want 429", last)
	}
}
