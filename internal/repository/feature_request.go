package repository

import (
	"context"

	"feedbackhub/internal/cache"
	"feedbackhub/internal/models"

	"gorm.io/gorm"
)

// FeatureRequestRepository defines the interface for feature request data operations
type FeatureRequestRepository interface {
	Create(ctx context.Context, request *models.FeatureRequest) error
	ListWithAuthors(ctx context.Context) ([]*models.FeatureRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	HasUpvoted(ctx context.Context, userID, featureRequestID uint) (bool, error)
	Upvote(ctx context.Context, userID, featureRequestID uint) error
}

type featureRequestRepository struct {
	db *gorm.DB
}

// NewFeatureRequestRepository creates a new feature request repository
func NewFeatureRequestRepository(db *gorm.DB) FeatureRequestRepository {
	return &featureRequestRepository{db: db}
}

func (r *featureRequestRepository) Create(ctx context.Context, request *models.FeatureRequest) error {
	if request.Status == "" {
		request.Status = models.FeatureStatusPlanned
	}
	err := r.db.WithContext(ctx).Create(request).Error
	if err == nil {
		cache.Invalidate(ctx, cache.FeatureListKey)
	}
	return err
}

// ListWithAuthors returns every feature request joined with its author's
// username and upvote count, newest first. The count is a subquery so the
// whole board is a single statement.
func (r *featureRequestRepository) ListWithAuthors(ctx context.Context) ([]*models.FeatureRequest, error) {
	var requests []*models.FeatureRequest
	err := cache.Aside(ctx, cache.FeatureListKey, &requests, cache.BoardTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.FeatureRequest{}).
			Select("feature_requests.*, users.username AS author_username, " +
				"(SELECT COUNT(*) FROM feature_request_upvotes WHERE feature_request_upvotes.feature_request_id = feature_requests.id) AS upvotes").
			Joins("LEFT JOIN users ON users.id = feature_requests.user_id").
			Order("feature_requests.created_at DESC").
			Find(&requests).Error
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus sets the status column of the targeted row. Updating a
// non-existent id affects zero rows and is not an error.
func (r *featureRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	err := r.db.WithContext(ctx).
		Model(&models.FeatureRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err == nil {
		cache.Invalidate(ctx, cache.FeatureListKey)
	}
	return err
}

func (r *featureRequestRepository) HasUpvoted(ctx context.Context, userID, featureRequestID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FeatureRequestUpvote{}).
		Where("user_id = ? AND feature_request_id = ?", userID, featureRequestID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *featureRequestRepository) Upvote(ctx context.Context, userID, featureRequestID uint) error {
	// Use INSERT ... ON CONFLICT DO NOTHING so a race between two attempts from
	// the same voter cannot produce duplicate rows; the unique index on
	// (user_id, feature_request_id) backs it.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO feature_request_upvotes (user_id, feature_request_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, feature_request_id) DO NOTHING`,
		userID, featureRequestID,
	)
	if result.Error == nil {
		cache.Invalidate(ctx, cache.FeatureListKey)
	}
	return result.Error
}
