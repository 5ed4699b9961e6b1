package model

import "time"

// Submission status values stored in submissions.status.  A submission
// starts pending and moves exactly once to verified or rejected; both
// are terminal.
const (
	SubmissionPending  = "pending"
	SubmissionVerified = "verified"
	SubmissionRejected = "rejected"
)

// Plastic type labels accepted on submission.  Each carries a point
// multiplier defined in the points package; unknown labels fall back
// to the Other multiplier.
const (
	PlasticPET   = "PET"
	PlasticHDPE  = "HDPE"
	PlasticPVC   = "PVC"
	PlasticLDPE  = "LDPE"
	PlasticPP    = "PP"
	PlasticPS    = "PS"
	PlasticOther = "Other"
)

// Submission records one citizen-reported batch of recycled plastic.
// The owner and PointsEarned are fixed at creation; only the
// verification workflow may change Status, VerifiedBy and VerifiedAt.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owner of the submission (immutable).
//  PlasticType  – one of PET, HDPE, PVC, LDPE, PP, PS, Other.
//  Weight       – weight in kilograms, positive.
//  Quantity     – number of items, positive.
//  Location     – free-text drop-off location.
//  Description  – optional free-text note (nullable).
//  PhotoURL     – reference to the stored photo (nullable).
//  PointsEarned – points granted at creation, never recalculated.
//  Status       – pending, verified or rejected.
//  VerifiedBy   – id of the admin/collector who decided (nullable).
//  VerifiedAt   – when the decision was made (nullable).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Submission struct {
	ID           uint64     // submissions.id
	UserID       uint64     // submissions.user_id
	PlasticType  string     // submissions.plastic_type
	Weight       float64    // submissions.weight
	Quantity     int        // submissions.quantity
	Location     string     // submissions.location
	Description  *string    // submissions.description (nullable)
	PhotoURL     *string    // submissions.photo_url (nullable)
	PointsEarned int64      // submissions.points_earned
	Status       string     // submissions.status
	VerifiedBy   *uint64    // submissions.verified_by (nullable)
	VerifiedAt   *time.Time // submissions.verified_at (nullable)
	CreatedAt    time.Time  // submissions.created_at
	UpdatedAt    time.Time  // submissions.updated_at
}
