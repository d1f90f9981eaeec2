package repository

import (
	"context"

	"feedbackhub/internal/cache"
	"feedbackhub/internal/models"

	"gorm.io/gorm"
)

// BugReportRepository defines the interface for bug report data operations
type BugReportRepository interface {
	Create(ctx context.Context, report *models.BugReport) error
	ListWithAuthors(ctx context.Context) ([]*models.BugReport, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type bugReportRepository struct {
	db *gorm.DB
}

// NewBugReportRepository creates a new bug report repository
func NewBugReportRepository(db *gorm.DB) BugReportRepository {
	return &bugReportRepository{db: db}
}

func (r *bugReportRepository) Create(ctx context.Context, report *models.BugReport) error {
	if report.Status == "" {
		report.Status = models.BugStatusInvestigating
	}
	err := r.db.WithContext(ctx).Create(report).Error
	if err == nil {
		cache.Invalidate(ctx, cache.BugListKey)
	}
	return err
}

// ListWithAuthors returns every bug report joined with its author's username,
// newest first. The result sits behind a short-TTL cache since the board read
// is a full table scan.
func (r *bugReportRepository) ListWithAuthors(ctx context.Context) ([]*models.BugReport, error) {
	var reports []*models.BugReport
	err := cache.Aside(ctx, cache.BugListKey, &reports, cache.BoardTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.BugReport{}).
			Select("bug_reports.*, users.username AS author_username").
			Joins("LEFT JOIN users ON users.id = bug_reports.user_id").
			Order("bug_reports.created_at DESC").
			Find(&reports).Error
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateStatus sets the status column of the targeted row. Updating a
// non-existent id affects zero rows and is not an error.
func (r *bugReportRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	err := r.db.WithContext(ctx).
		Model(&models.BugReport{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err == nil {
		cache.Invalidate(ctx, cache.BugListKey)
	}
	return err
}
