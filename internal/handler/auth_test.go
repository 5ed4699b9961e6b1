package handler

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plastiside/plastiside/internal/config"
	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/repository"
)

// userRow builds a single full users row for sqlmock queries.
func userRow() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "first_name", "last_name", "role",
		"status", "points", "rank", "business_name", "avatar_url",
		"created_at", "updated_at",
	}).AddRow(
		uint64(5), "taken@plastiside.com", "hash", "A", "B", model.RoleCitizen,
		model.StatusActive, int64(0), "Bronze", nil, nil, now, now)
}

func TestVerifyAdminInviteRejectsUnknownCode(t *testing.T) {
	h := NewAuthHandler(config.Config{AdminInviteCodes: []string{"alpha", "beta"}}, nil)

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/verify-admin-invite",
		`{"inviteCode":"gamma","email":"new@plastiside.com"}`, 0)
	require.NoError(t, h.VerifyAdminInvite(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyAdminInviteAcceptsFreshEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("new@plastiside.com").
		WillReturnError(sql.ErrNoRows)

	h := NewAuthHandler(config.Config{AdminInviteCodes: []string{"alpha"}}, repository.NewUserRepo(db))
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/verify-admin-invite",
		`{"inviteCode":"alpha","email":"NEW@plastiside.com"}`, 0)
	require.NoError(t, h.VerifyAdminInvite(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAdminInviteRejectsTakenEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("taken@plastiside.com").
		WillReturnRows(userRow())

	h := NewAuthHandler(config.Config{AdminInviteCodes: []string{"alpha"}}, repository.NewUserRepo(db))
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/verify-admin-invite",
		`{"inviteCode":"alpha","email":"taken@plastiside.com"}`, 0)
	require.NoError(t, h.VerifyAdminInvite(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WillReturnError(sql.ErrNoRows)

	h := NewAuthHandler(config.Config{JWTSecret: "s", TokenTTLDays: 7}, repository.NewUserRepo(db))
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/login",
		`{"email":"ghost@plastiside.com","password":"pw"}`, 0)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil)
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/register",
		`{"email":"a@b.com","password":"pw"}`, 0)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
