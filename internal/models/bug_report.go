package models

import "time"

// Bug report statuses. Stored as plain text so the board can render them verbatim.
const (
	BugStatusInvestigating    = "Investigating"
	BugStatusConfirmed        = "Confirmed"
	BugStatusFixInProgress    = "Fix in Progress"
	BugStatusResolved         = "Resolved"
	BugStatusCannotReproduce  = "Cannot Reproduce"
	BugStatusExpectedBehavior = "Expected Behavior"
	BugStatusDeferred         = "Deferred"
)

var bugStatuses = map[string]struct{}{
	BugStatusInvestigating:    {},
	BugStatusConfirmed:        {},
	BugStatusFixInProgress:    {},
	BugStatusResolved:         {},
	BugStatusCannotReproduce:  {},
	BugStatusExpectedBehavior: {},
	BugStatusDeferred:         {},
}

// ValidBugStatus reports whether s is a member of the bug report status enum.
func ValidBugStatus(s string) bool {
	_, ok := bugStatuses[s]
	return ok
}

// BugReport is a user-submitted defect record. Only the status column is ever
// updated after creation.
type BugReport struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Status      string    `gorm:"not null;default:'Investigating'" json:"status"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	// AuthorUsername is not persisted; joined from users at query time.
	AuthorUsername string    `gorm:"->;-:migration" json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}
