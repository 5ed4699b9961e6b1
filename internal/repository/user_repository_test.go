package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plastiside/plastiside/internal/model"
)

var userColNames = []string{
	"id", "email", "password_hash", "first_name", "last_name", "role",
	"status", "points", "rank", "business_name", "avatar_url",
	"created_at", "updated_at",
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "a@b.com", "pw", "A", "B", model.RoleCitizen, nil, 4)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDropsBusinessNameForCitizens(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The business name column must be NULL for non-collector roles even
	// when the client sends one.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@b.com", sqlmock.AnyArg(), "A", "B", model.RoleCitizen, nil).
		WillReturnResult(sqlmock.NewResult(5, 1))

	bn := "Green Ltd"
	repo := NewUserRepo(db)
	id, err := repo.Create(context.Background(), "A@B.com", "pw", "A", "B", model.RoleCitizen, &bn, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmailNormalizes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(userColNames).AddRow(
			uint64(5), "a@b.com", "hash", "A", "B", model.RoleCitizen,
			model.StatusActive, int64(0), "Bronze", nil, nil, now, now))

	repo := NewUserRepo(db)
	u, err := repo.GetByEmail(context.Background(), "  A@B.com ")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateStatusMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET status=? WHERE id=?")).
		WithArgs(model.StatusSuspended, uint64(9999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE id=?")).
		WithArgs(uint64(9999)).
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	err = repo.UpdateStatus(context.Background(), 9999, model.StatusSuspended)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserSumPoints(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(points),0) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(12345)))

	repo := NewUserRepo(db)
	n, err := repo.SumPoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12345), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
