package models

import "time"

// Feature request statuses.
const (
	FeatureStatusPlanned               = "Planned"
	FeatureStatusInProgress            = "In Progress"
	FeatureStatusUnderReview           = "Under Review"
	FeatureStatusExploringAlternatives = "Exploring Alternatives"
	FeatureStatusNotPlanned            = "Not Planned"
	FeatureStatusDuplicate             = "Duplicate"
	FeatureStatusReleased              = "Released"
)

var featureStatuses = map[string]struct{}{
	FeatureStatusPlanned:               {},
	FeatureStatusInProgress:            {},
	FeatureStatusUnderReview:           {},
	FeatureStatusExploringAlternatives: {},
	FeatureStatusNotPlanned:            {},
	FeatureStatusDuplicate:             {},
	FeatureStatusReleased:              {},
}

// ValidFeatureStatus reports whether s is a member of the feature request status enum.
func ValidFeatureStatus(s string) bool {
	_, ok := featureStatuses[s]
	return ok
}

// FeatureRequest is a user-submitted enhancement proposal.
type FeatureRequest struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Status      string `gorm:"not null;default:'Planned'" json:"status"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"-"`
	// AuthorUsername is not persisted; joined from users at query time.
	AuthorUsername string `gorm:"->;-:migration" json:"author_username"`
	// Upvotes is not persisted; counted at query time.
	Upvotes   int       `gorm:"->;-:migration" json:"upvotes"`
	CreatedAt time.Time `json:"created_at"`
}

// FeatureRequestUpvote records one user's endorsement of one feature request.
// The combination of UserID and FeatureRequestID must be unique.
type FeatureRequestUpvote struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;uniqueIndex:idx_voter_feature" json:"user_id"`
	FeatureRequestID uint           `gorm:"not null;uniqueIndex:idx_voter_feature" json:"feature_request_id"`
	User             User           `gorm:"foreignKey:UserID" json:"-"`
	FeatureRequest   FeatureRequest `gorm:"foreignKey:FeatureRequestID" json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
}
