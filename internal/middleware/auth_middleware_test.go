package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StudentPortalAPI/internal/model"
	"StudentPortalAPI/internal/repository"
	"StudentPortalAPI/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	users map[string]*model.User
}

func (f *fakeResolver) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func newGateServer(t *testing.T, users ...*model.User) (*echo.Echo, *token.Service, *fakeResolver) {
	t.Helper()
	tokens, err := token.NewService("test-secret", "test")
	require.NoError(t, err)

	resolver := &fakeResolver{users: map[string]*model.User{}}
	for _, u := range users {
		resolver.users[u.ID] = u
	}

	e := echo.New()
	ok := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"id": CurrentUser(c).ID})
	}
	protected := e.Group("")
	protected.Use(Authenticate(tokens, resolver))
	protected.GET("/profile", ok)

	admin := e.Group("/admin")
	admin.Use(Authenticate(tokens, resolver))
	admin.Use(RequireAdmin)
	admin.GET("/users", ok)

	student := e.Group("/student")
	student.Use(Authenticate(tokens, resolver))
	student.Use(RequireStudent)
	student.GET("/home", ok)

	return e, tokens, resolver
}

func do(e *echo.Echo, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_NoToken(t *testing.T) {
	e, _, _ := newGateServer(t)

	rec := do(e, "/profile", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")
}

func TestAuthenticate_BadHeaderShape(t *testing.T) {
	e, tokens, _ := newGateServer(t)
	tok, err := tokens.Issue("u1", model.RoleStudent, time.Hour)
	require.NoError(t, err)

	for _, header := range []string{"Basic abc", tok, "Bearer"} {
		rec := do(e, "/profile", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	e, _, _ := newGateServer(t)

	// expired, foreign-signed and garbage tokens all get the same answer
	foreign, err := token.NewService("other-secret", "test")
	require.NoError(t, err)
	foreignTok, err := foreign.Issue("u1", model.RoleAdmin, time.Hour)
	require.NoError(t, err)

	tokens, err := token.NewService("test-secret", "test")
	require.NoError(t, err)
	expired, err := tokens.Issue("u1", model.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"garbage": "not.a.token",
		"foreign": foreignTok,
		"expired": expired,
	} {
		rec := do(e, "/profile", "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.Contains(t, rec.Body.String(), "Invalid token", name)
	}
}

func TestAuthenticate_DeletedSubjectRejected(t *testing.T) {
	u := &model.User{ID: "u1", Role: model.RoleStudent}
	e, tokens, resolver := newGateServer(t, u)

	tok, err := tokens.Issue(u.ID, u.Role, time.Hour)
	require.NoError(t, err)

	rec := do(e, "/profile", "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)

	// delete the user; the still-valid token must stop working immediately
	delete(resolver.users, u.ID)
	rec = do(e, "/profile", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
}

func TestRoleGates(t *testing.T) {
	admin := &model.User{ID: "a1", Role: model.RoleAdmin}
	student := &model.User{ID: "s1", Role: model.RoleStudent}
	e, tokens, _ := newGateServer(t, admin, student)

	adminTok, err := tokens.Issue(admin.ID, admin.Role, time.Hour)
	require.NoError(t, err)
	studentTok, err := tokens.Issue(student.ID, student.Role, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(e, "/admin/users", "Bearer "+adminTok).Code)
	assert.Equal(t, http.StatusOK, do(e, "/student/home", "Bearer "+studentTok).Code)

	rec := do(e, "/admin/users", "Bearer "+studentTok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin privileges required")

	rec = do(e, "/student/home", "Bearer "+adminTok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Student privileges required")
}

func TestRoleGate_UsesStoreRoleNotTokenRole(t *testing.T) {
	u := &model.User{ID: "u1", Role: model.RoleStudent}
	e, tokens, _ := newGateServer(t, u)

	// token claims admin, but the store says student; the store wins
	tok, err := tokens.Issue(u.ID, model.RoleAdmin, time.Hour)
	require.NoError(t, err)

	rec := do(e, "/admin/users", "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCurrentUser_Unset(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))
}
