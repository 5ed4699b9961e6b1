package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/repository"
	"github.com/plastiside/plastiside/internal/utils"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func newCtx() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireRoleForbidsOutsiders(t *testing.T) {
	mw := RequireRole(model.RoleAdmin, model.RoleCollector)

	c, rec := newCtx()
	c.Set("role", model.RoleCitizen)
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = newCtx()
	c.Set("role", model.RoleCollector)
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleWithoutRole(t *testing.T) {
	mw := RequireRole(model.RoleAdmin)
	c, rec := newCtx()
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthRoundTrip(t *testing.T) {
	const secret = "test-secret"
	access, err := utils.NewAccessToken(secret, 7, model.RoleCitizen, 7)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUID uint64
	var gotRole string
	handler := func(c echo.Context) error {
		gotUID, _ = c.Get("user_id").(uint64)
		gotRole, _ = c.Get("role").(string)
		return c.String(http.StatusOK, "ok")
	}
	require.NoError(t, JWTAuth(secret)(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), gotUID)
	assert.Equal(t, model.RoleCitizen, gotRole)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	c, rec := newCtx()
	require.NoError(t, JWTAuth("s")(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	access, err := utils.NewAccessToken("right", 7, model.RoleCitizen, 7)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	rec := httptest.NewRecorder()
	require.NoError(t, JWTAuth("wrong")(okHandler)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func activeUserRow(status, role string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "first_name", "last_name", "role",
		"status", "points", "rank", "business_name", "avatar_url",
		"created_at", "updated_at",
	}).AddRow(
		uint64(7), "u@plastiside.com", "hash", "A", "B", role,
		status, int64(0), "Bronze", nil, nil, now, now)
}

func TestRequireActiveBlocksSuspended(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
		WithArgs(uint64(7)).
		WillReturnRows(activeUserRow(model.StatusSuspended, model.RoleCitizen))

	c, rec := newCtx()
	c.Set("user_id", uint64(7))
	mw := RequireActive(repository.NewUserRepo(db))
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireActiveRefreshesRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Token says citizen; database says collector.  The gate must trust
	// the database.
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id=?")).
		WithArgs(uint64(7)).
		WillReturnRows(activeUserRow(model.StatusActive, model.RoleCollector))

	c, rec := newCtx()
	c.Set("user_id", uint64(7))
	c.Set("role", model.RoleCitizen)

	var seenRole string
	handler := func(c echo.Context) error {
		seenRole, _ = c.Get("role").(string)
		return c.String(http.StatusOK, "ok")
	}
	mw := RequireActive(repository.NewUserRepo(db))
	require.NoError(t, mw(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.RoleCollector, seenRole)
}

func TestRequireActiveWithoutPrincipal(t *testing.T) {
	c, rec := newCtx()
	mw := RequireActive(nil)
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
