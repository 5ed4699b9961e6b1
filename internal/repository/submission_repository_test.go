package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plastiside/plastiside/internal/model"
)

var submissionColNames = []string{
	"id", "user_id", "plastic_type", "weight", "quantity", "location",
	"description", "photo_url", "points_earned", "status",
	"verified_by", "verified_at", "created_at", "updated_at",
}

func TestSubmissionCreateGrantsPointsAndRank(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()

	// 3kg x 2 HDPE = floor(3*2*15/10) = 9 points; owner goes from 998 to
	// 1007, crossing into Silver.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO submissions")).
		WithArgs(uint64(7), model.PlasticHDPE, 3.0, 2, "Depot 4", nil, nil, int64(9), model.SubmissionPending).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET points = points + ? WHERE id = ?")).
		WithArgs(int64(9), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT points FROM users WHERE id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(int64(1007)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET `rank` = ? WHERE id = ?")).
		WithArgs("Silver", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions WHERE id = ?")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(submissionColNames).AddRow(
			uint64(42), uint64(7), model.PlasticHDPE, 3.0, 2, "Depot 4",
			nil, nil, int64(9), model.SubmissionPending, nil, nil, now, now))
	mock.ExpectCommit()

	repo := NewSubmissionRepo(db)
	sub := model.Submission{
		UserID:      7,
		PlasticType: model.PlasticHDPE,
		Weight:      3.0,
		Quantity:    2,
		Location:    "Depot 4",
	}
	require.NoError(t, repo.Create(context.Background(), &sub))

	assert.Equal(t, uint64(42), sub.ID)
	assert.Equal(t, int64(9), sub.PointsEarned)
	assert.Equal(t, model.SubmissionPending, sub.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionCreateRollsBackOnPointsFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO submissions")).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET points = points + ? WHERE id = ?")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	repo := NewSubmissionRepo(db)
	sub := model.Submission{UserID: 7, PlasticType: model.PlasticPET, Weight: 1, Quantity: 1, Location: "x"}
	require.Error(t, repo.Create(context.Background(), &sub))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionVerifyAlreadyDecided(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, points_earned, status FROM submissions WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "points_earned", "status"}).
			AddRow(uint64(7), int64(9), model.SubmissionVerified))
	mock.ExpectRollback()

	repo := NewSubmissionRepo(db)
	_, err = repo.Verify(context.Background(), 42, model.SubmissionRejected, 1, false)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionVerifyMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(uint64(9999)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	repo := NewSubmissionRepo(db)
	_, err = repo.Verify(context.Background(), 9999, model.SubmissionVerified, 1, false)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionVerifyAccepts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "points_earned", "status"}).
			AddRow(uint64(7), int64(9), model.SubmissionPending))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE submissions SET status = ?, verified_by = ?, verified_at = ? WHERE id = ?")).
		WithArgs(model.SubmissionVerified, uint64(3), sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions WHERE id = ?")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(submissionColNames).AddRow(
			uint64(42), uint64(7), model.PlasticPET, 2.0, 5, "Depot 4",
			nil, nil, int64(10), model.SubmissionVerified, uint64(3), now, now, now))
	mock.ExpectCommit()

	repo := NewSubmissionRepo(db)
	updated, err := repo.Verify(context.Background(), 42, model.SubmissionVerified, 3, false)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionVerified, updated.Status)
	require.NotNil(t, updated.VerifiedBy)
	assert.Equal(t, uint64(3), *updated.VerifiedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionVerifyRejectRevokesPoints(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "points_earned", "status"}).
			AddRow(uint64(7), int64(9), model.SubmissionPending))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE submissions SET status = ?, verified_by = ?, verified_at = ? WHERE id = ?")).
		WithArgs(model.SubmissionRejected, uint64(3), sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET points = GREATEST(points - ?, 0) WHERE id = ?")).
		WithArgs(int64(9), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT points FROM users WHERE id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(int64(998)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET `rank` = ? WHERE id = ?")).
		WithArgs("Bronze", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions WHERE id = ?")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(submissionColNames).AddRow(
			uint64(42), uint64(7), model.PlasticHDPE, 3.0, 2, "Depot 4",
			nil, nil, int64(9), model.SubmissionRejected, uint64(3), now, now, now))
	mock.ExpectCommit()

	repo := NewSubmissionRepo(db)
	updated, err := repo.Verify(context.Background(), 42, model.SubmissionRejected, 3, true)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionRejected, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWeightByType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT plastic_type, SUM(weight) FROM submissions GROUP BY plastic_type")).
		WillReturnRows(sqlmock.NewRows([]string{"plastic_type", "total"}).
			AddRow(model.PlasticHDPE, 12.5).
			AddRow(model.PlasticPET, 40.0))

	repo := NewSubmissionRepo(db)
	out, err := repo.WeightByType(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, model.PlasticHDPE, out[0].PlasticType)
	assert.Equal(t, 12.5, out[0].TotalWeight)
	assert.NoError(t, mock.ExpectationsWereMet())
}
