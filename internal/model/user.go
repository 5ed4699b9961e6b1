package model

import "time"

// Role values stored in users.role.  Citizens submit plastic, buyers
// purchase verified plastic, collectors run collection centers and may
// verify submissions, admins manage the platform.
const (
	RoleCitizen   = "citizen"
	RoleBuyer     = "buyer"
	RoleCollector = "collector"
	RoleAdmin     = "admin"
)

// Account status values stored in users.status.  Only active accounts
// may perform gated operations; status is changed exclusively by admins.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusInactive  = "inactive"
)

// User represents an application user record as stored in the
// `users` table.  Points are mutated only by the submission ledger
// and rank is derived from points via the rank classifier whenever
// the total changes.  Users are never hard-deleted.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  FirstName    – given name.
//  LastName     – family name.
//  Role         – one of citizen, buyer, collector, admin.
//  Status       – one of active, suspended, inactive.
//  Points       – cumulative points, non-negative.
//  Rank         – derived tier (Bronze/Silver/Gold/Platinum).
//  BusinessName – collection business name (collectors only, nullable).
//  AvatarURL    – reference to the stored avatar image (nullable).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64     // users.id
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	FirstName    string     // users.first_name
	LastName     string     // users.last_name
	Role         string     // users.role
	Status       string     // users.status
	Points       int64      // users.points
	Rank         string     // users.rank
	BusinessName *string    // users.business_name (nullable)
	AvatarURL    *string    // users.avatar_url (nullable)
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}
