package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/points"
)

// SubmissionRepo is the submission ledger.  It is the only component
// that mutates user points and ranks: Create grants points when a
// batch is recorded, and Verify optionally claws them back on
// rejection when the revoke policy is enabled.  All timestamp fields
// are stored in UTC.
type SubmissionRepo struct {
	db *sql.DB
}

// NewSubmissionRepo returns a SubmissionRepo bound to the given database.
func NewSubmissionRepo(db *sql.DB) *SubmissionRepo { return &SubmissionRepo{db: db} }

const submissionCols = "id,user_id,plastic_type,weight,quantity,location,description,photo_url,points_earned,status,verified_by,verified_at,created_at,updated_at"

func scanSubmission(scan func(dest ...any) error) (model.Submission, error) {
	var s model.Submission
	err := scan(&s.ID, &s.UserID, &s.PlasticType, &s.Weight, &s.Quantity,
		&s.Location, &s.Description, &s.PhotoURL, &s.PointsEarned, &s.Status,
		&s.VerifiedBy, &s.VerifiedAt, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create records a submission and grants its points in one transaction:
// the submission row is inserted with status pending, the owner's
// points are incremented with a relative UPDATE (safe under concurrent
// creates), and the rank is recomputed from the total read back under
// the row lock taken by that UPDATE.  The points grant is unconditional;
// later verification outcomes do not retroactively change it unless the
// revoke policy is enabled.  On success the generated ID, computed
// points, status and timestamps are populated on sub.
func (r *SubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	sub.PointsEarned = points.ComputePoints(sub.PlasticType, sub.Weight, sub.Quantity)
	sub.Status = model.SubmissionPending

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO submissions (user_id, plastic_type, weight, quantity, location, description, photo_url, points_earned, status)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		sub.UserID, sub.PlasticType, sub.Weight, sub.Quantity, sub.Location,
		sub.Description, sub.PhotoURL, sub.PointsEarned, sub.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sub.ID = uint64(id)

	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET points = points + ? WHERE id = ?",
		sub.PointsEarned, sub.UserID); err != nil {
		return err
	}

	var total int64
	if err := tx.QueryRowContext(ctx,
		"SELECT points FROM users WHERE id = ?", sub.UserID).Scan(&total); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET `rank` = ? WHERE id = ?",
		points.ComputeRank(total), sub.UserID); err != nil {
		return err
	}

	// Query back the full row to populate timestamps and defaults
	created, err := scanSubmission(tx.QueryRowContext(ctx,
		"SELECT "+submissionCols+" FROM submissions WHERE id = ?", sub.ID).Scan)
	if err != nil {
		return err
	}
	*sub = created

	return tx.Commit()
}

// ListByUser returns the submissions owned by a user, newest first.
func (r *SubmissionRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+submissionCols+" FROM submissions WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	subs := make([]model.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// SubmissionWithOwner pairs a submission with the owner details the
// admin listing displays.
type SubmissionWithOwner struct {
	model.Submission
	OwnerEmail     string
	OwnerFirstName string
	OwnerLastName  string
}

// ListAll returns every submission with owner info, newest first.
// Role enforcement happens in the access gate; the repository does not
// filter.
func (r *SubmissionRepo) ListAll(ctx context.Context) ([]SubmissionWithOwner, error) {
	const q = `SELECT s.id, s.user_id, s.plastic_type, s.weight, s.quantity, s.location,
	                  s.description, s.photo_url, s.points_earned, s.status,
	                  s.verified_by, s.verified_at, s.created_at, s.updated_at,
	                  u.email, u.first_name, u.last_name
	           FROM submissions s
	           JOIN users u ON u.id = s.user_id
	           ORDER BY s.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]SubmissionWithOwner, 0)
	for rows.Next() {
		var d SubmissionWithOwner
		if err := rows.Scan(&d.ID, &d.UserID, &d.PlasticType, &d.Weight, &d.Quantity,
			&d.Location, &d.Description, &d.PhotoURL, &d.PointsEarned, &d.Status,
			&d.VerifiedBy, &d.VerifiedAt, &d.CreatedAt, &d.UpdatedAt,
			&d.OwnerEmail, &d.OwnerFirstName, &d.OwnerLastName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Verify moves a pending submission to verified or rejected and stamps
// the deciding principal.  Transitions out of a terminal state return
// ErrConflict; a missing submission returns sql.ErrNoRows.  When
// revokePoints is set and the decision is a rejection, the points
// granted at creation are clawed back (floored at zero) and the
// owner's rank recomputed, all within the same transaction.
func (r *SubmissionRepo) Verify(ctx context.Context, id uint64, newStatus string, verifierID uint64, revokePoints bool) (model.Submission, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Submission{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var ownerID uint64
	var earned int64
	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT user_id, points_earned, status FROM submissions WHERE id = ? FOR UPDATE",
		id).Scan(&ownerID, &earned, &status)
	if err != nil {
		return model.Submission{}, err
	}
	if status != model.SubmissionPending {
		return model.Submission{}, ErrConflict
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE submissions SET status = ?, verified_by = ?, verified_at = ? WHERE id = ?",
		newStatus, verifierID, now, id); err != nil {
		return model.Submission{}, err
	}

	if revokePoints && newStatus == model.SubmissionRejected {
		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET points = GREATEST(points - ?, 0) WHERE id = ?",
			earned, ownerID); err != nil {
			return model.Submission{}, err
		}
		var total int64
		if err := tx.QueryRowContext(ctx,
			"SELECT points FROM users WHERE id = ?", ownerID).Scan(&total); err != nil {
			return model.Submission{}, err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET `rank` = ? WHERE id = ?",
			points.ComputeRank(total), ownerID); err != nil {
			return model.Submission{}, err
		}
	}

	updated, err := scanSubmission(tx.QueryRowContext(ctx,
		"SELECT "+submissionCols+" FROM submissions WHERE id = ?", id).Scan)
	if err != nil {
		return model.Submission{}, err
	}
	return updated, tx.Commit()
}

// CountAll returns the total number of submissions.
func (r *SubmissionRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&n)
	return n, err
}

// TypeWeight is one group-by row of the analytics rollup: the total
// weight submitted for a plastic type.  Types with no submissions are
// simply absent.
type TypeWeight struct {
	PlasticType string  `json:"plastic_type"`
	TotalWeight float64 `json:"total_weight"`
}

// WeightByType sums submission weight grouped by plastic type.
func (r *SubmissionRepo) WeightByType(ctx context.Context) ([]TypeWeight, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT plastic_type, SUM(weight) FROM submissions GROUP BY plastic_type ORDER BY plastic_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TypeWeight, 0)
	for rows.Next() {
		var tw TypeWeight
		if err := rows.Scan(&tw.PlasticType, &tw.TotalWeight); err != nil {
			return nil, err
		}
		out = append(out, tw)
	}
	return out, rows.Err()
}
