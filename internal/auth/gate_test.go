package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slicepoll/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func newTestGate(repo *users.MemoryRepo) *Gate {
	g := NewGate(users.NewService(repo))
	g.clock = func() time.Time { return time.Unix(1700000000, 0) }
	return g
}

func authedRouter(g *Gate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", g.RequireAuthenticated(), func(c *gin.Context) {
		u, _ := UserFrom(c.Request.Context())
		c.JSON(200, u)
	})
	r.GET("/admin", g.RequireAdmin(), func(c *gin.Context) {
		c.Status(200)
	})
	return r
}

func doGet(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body %q: %v", w.Body.String(), err)
	}
	return body["error"]
}

func validToken(t *testing.T, sub string) string {
	return mintToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Unix(1700000000, 0).Add(time.Hour)),
		},
		Email: sub + "@example.com",
	})
}

func TestRequireAuthenticated_NoHeader(t *testing.T) {
	repo := users.NewMemoryRepo()
	r := authedRouter(newTestGate(repo))

	w := doGet(r, "/private", "")
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := errorBody(t, w); got != "Authentication required" {
		t.Fatalf("unexpected reason %q", got)
	}
	if calls, _ := repo.Ops(); calls != 0 {
		t.Fatalf("anonymous request must not touch the store, got %d calls", calls)
	}
}

func TestRequireAuthenticated_MalformedToken(t *testing.T) {
	repo := users.NewMemoryRepo()
	r := authedRouter(newTestGate(repo))

	w := doGet(r, "/private", "Bearer a.b")
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := errorBody(t, w); got != "Invalid token format" {
		t.Fatalf("unexpected reason %q", got)
	}
	if calls, _ := repo.Ops(); calls != 0 {
		t.Fatalf("malformed token must not reach the store, got %d calls", calls)
	}
}

func TestRequireAuthenticated_ExpiredToken(t *testing.T) {
	repo := users.NewMemoryRepo()
	g := newTestGate(repo)
	r := authedRouter(g)

	tok := mintToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ext-1",
			ExpiresAt: jwt.NewNumericDate(g.clock().Add(-time.Minute)),
		},
	})
	w := doGet(r, "/private", "Bearer "+tok)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := errorBody(t, w); got != "Token expired" {
		t.Fatalf("unexpected reason %q", got)
	}
}

func TestRequireAuthenticated_ProvisionsLazilyOnce(t *testing.T) {
	repo := users.NewMemoryRepo()
	r := authedRouter(newTestGate(repo))
	tok := validToken(t, "ext-7")

	w := doGet(r, "/private", "Bearer "+tok)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var first users.User
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if first.ExternalID != "ext-7" || first.Role != users.RoleUser {
		t.Fatalf("unexpected user: %+v", first)
	}

	w = doGet(r, "/private", "Bearer "+tok)
	if w.Code != 200 {
		t.Fatalf("expected 200 on repeat, got %d", w.Code)
	}
	var second users.User
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same row twice, got %q then %q", first.ID, second.ID)
	}
	if _, inserts := repo.Ops(); inserts != 1 {
		t.Fatalf("expected exactly one insert, got %d", inserts)
	}
}

func TestRequireAuthenticated_StoreFailure(t *testing.T) {
	repo := users.NewMemoryRepo()
	repo.FailNext = errors.New("connection refused")
	r := authedRouter(newTestGate(repo))

	w := doGet(r, "/private", "Bearer "+validToken(t, "ext-1"))
	if w.Code != 401 {
		t.Fatalf("store failure must stay a 401, got %d", w.Code)
	}
	if got := errorBody(t, w); got != "Failed to verify token" {
		t.Fatalf("unexpected reason %q", got)
	}
}

func TestRequireAuthenticated_MissingSubject(t *testing.T) {
	repo := users.NewMemoryRepo()
	r := authedRouter(newTestGate(repo))

	tok := mintToken(t, Claims{Email: "nobody@example.com"})
	w := doGet(r, "/private", "Bearer "+tok)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := errorBody(t, w); got != "Failed to verify token" {
		t.Fatalf("unexpected reason %q", got)
	}
}

func TestRequireAdmin_ForbiddenForPlainUser(t *testing.T) {
	repo := users.NewMemoryRepo()
	r := authedRouter(newTestGate(repo))

	w := doGet(r, "/admin", "Bearer "+validToken(t, "ext-2"))
	if w.Code != 403 {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if got := errorBody(t, w); got != "Admin access required" {
		t.Fatalf("unexpected reason %q", got)
	}
}

func TestRequireAdmin_AllowsAdminRow(t *testing.T) {
	repo := users.NewMemoryRepo()
	repo.Put(users.User{ID: "u-admin", ExternalID: "ext-3", Email: "boss@example.com", Role: users.RoleAdmin})
	r := authedRouter(newTestGate(repo))

	w := doGet(r, "/admin", "Bearer "+validToken(t, "ext-3"))
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRequireAdmin_ClaimsRolesDoNotGrantAdmin(t *testing.T) {
	repo := users.NewMemoryRepo()
	r := authedRouter(newTestGate(repo))

	tok := mintToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ext-4"},
		AppMetadata:      AppMetadata{Roles: []string{"admin"}},
	})
	w := doGet(r, "/admin", "Bearer "+tok)
	if w.Code != 403 {
		t.Fatalf("token roles must not bypass the local role check, got %d", w.Code)
	}
}

func TestOptional_NeverAborts(t *testing.T) {
	repo := users.NewMemoryRepo()
	g := newTestGate(repo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/public", g.Optional(), func(c *gin.Context) {
		if u, err := UserFrom(c.Request.Context()); err == nil {
			c.JSON(200, gin.H{"user": u.ExternalID})
			return
		}
		c.JSON(200, gin.H{"user": nil})
	})

	for _, header := range []string{"", "Bearer a.b", "Bearer " + validToken(t, "ext-5")} {
		if w := doGet(r, "/public", header); w.Code != 200 {
			t.Fatalf("header %q: expected 200, got %d", header, w.Code)
		}
	}
}
