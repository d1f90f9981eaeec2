// Package seed populates the database with demo data for local development.
package seed

import (
	"fmt"
	"log"

	"feedbackhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password assigned to every seeded account.
const DemoPassword = "DemoAccount12!"

var bugStatuses = []string{
	models.BugStatusInvestigating,
	models.BugStatusConfirmed,
	models.BugStatusFixInProgress,
	models.BugStatusResolved,
	models.BugStatusCannotReproduce,
	models.BugStatusExpectedBehavior,
	models.BugStatusDeferred,
}

var featureStatuses = []string{
	models.FeatureStatusPlanned,
	models.FeatureStatusInProgress,
	models.FeatureStatusUnderReview,
	models.FeatureStatusExploringAlternatives,
	models.FeatureStatusNotPlanned,
	models.FeatureStatusDuplicate,
	models.FeatureStatusReleased,
}

// Feedback seeds users, bug reports, feature requests, and upvotes.
func Feedback(db *gorm.DB, userCount, entriesPerUser int) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	users := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		country := gofakeit.CountryAbr()
		user := &models.User{
			Username:      fmt.Sprintf("%s_%d", gofakeit.Username(), i),
			Email:         fmt.Sprintf("demo%d_%s", i, gofakeit.Email()),
			Password:      string(hashed),
			EmailVerified: gofakeit.Bool(),
			Country:       &country,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	var features []*models.FeatureRequest
	for _, user := range users {
		for i := 0; i < entriesPerUser; i++ {
			bug := &models.BugReport{
				Title:       gofakeit.HackerPhrase(),
				Description: gofakeit.Paragraph(1, 3, 12, " "),
				Status:      bugStatuses[gofakeit.Number(0, len(bugStatuses)-1)],
				UserID:      user.ID,
			}
			if err := db.Create(bug).Error; err != nil {
				return fmt.Errorf("seed bug report: %w", err)
			}

			feature := &models.FeatureRequest{
				Title:       gofakeit.Sentence(6),
				Description: gofakeit.Paragraph(1, 3, 12, " "),
				Status:      featureStatuses[gofakeit.Number(0, len(featureStatuses)-1)],
				UserID:      user.ID,
			}
			if err := db.Create(feature).Error; err != nil {
				return fmt.Errorf("seed feature request: %w", err)
			}
			features = append(features, feature)
		}
	}

	// Scatter upvotes; the unique pair index makes repeats harmless.
	upvotes := 0
	for _, feature := range features {
		for _, user := range users {
			if !gofakeit.Bool() {
				continue
			}
			result := db.Exec(
				`INSERT INTO feature_request_upvotes (user_id, feature_request_id, created_at)
				 VALUES (?, ?, CURRENT_TIMESTAMP)
				 ON CONFLICT (user_id, feature_request_id) DO NOTHING`,
				user.ID, feature.ID,
			)
			if result.Error != nil {
				return fmt.Errorf("seed upvote: %w", result.Error)
			}
			upvotes += int(result.RowsAffected)
		}
	}

	log.Printf("seeded %d users, %d bug reports, %d feature requests, %d upvotes",
		len(users), len(users)*entriesPerUser, len(features), upvotes)
	return nil
}
