package caregiver

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles known to the system.
type Role string

const (
	RoleCaregiver  Role = "caregiver"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCaregiver, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// CanAuthorize reports whether the role may authorize assignment and review
// decisions.
func (r Role) CanAuthorize() bool {
	return r == RoleSupervisor || r == RoleAdmin
}

// Caregiver is a system user. Caregivers are never hard-deleted; Active is a
// soft flag that removes them from auto-assignment candidacy.
type Caregiver struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Email           string    `db:"email" json:"email"`
	Role            Role      `db:"role" json:"role"`
	Specialties     []string  `db:"specialties" json:"specialties"`
	WeeklyCapacity  *int      `db:"weekly_capacity" json:"weekly_capacity,omitempty"`
	WeeklySchedule  *string   `db:"weekly_schedule" json:"weekly_schedule,omitempty"`
	YearsExperience int       `db:"years_experience" json:"years_experience"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
