// Package queue defines message payloads exchanged over the message broker.
package queue

// SubmissionVerifiedEvent is published whenever an admin or collector
// decides a submission (verified or rejected).  It carries enough
// information for downstream consumers to audit-log or notify without
// querying the primary database.
type SubmissionVerifiedEvent struct {
    SubmissionID uint64  `json:"submission_id"`
    OwnerID      uint64  `json:"owner_id"`
    VerifierID   uint64  `json:"verifier_id"`
    PlasticType  string  `json:"plastic_type"`
    Weight       float64 `json:"weight"`
    Quantity     int     `json:"quantity"`
    PointsEarned int64   `json:"points_earned"`
    Status       string  `json:"status"`
    DecidedAt    string  `json:"decided_at"`
}
