package repository

import (
	"context"
	"errors"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines persistence operations for moderation reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (*models.Report, error)
	Exists(ctx context.Context, postID, reporterID uint) (bool, error)
	Update(ctx context.Context, report *models.Report) error
	ListByClub(ctx context.Context, clubID uint, resolved *bool) ([]models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository returns a new ReportRepository implementation.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	err := r.db.WithContext(ctx).Create(report).Error
	// The unique (post_id, reporter_id) index backs the duplicate pre-check
	// under concurrency.
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewDuplicateError("You have already reported this post")
	}
	return err
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).Preload("Post").First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Report", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &report, nil
}

func (r *reportRepository) Exists(ctx context.Context, postID, reporterID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("post_id = ? AND reporter_id = ?", postID, reporterID).
		Count(&count).Error
	return count > 0, err
}

func (r *reportRepository) Update(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) ListByClub(ctx context.Context, clubID uint, resolved *bool) ([]models.Report, error) {
	query := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Reporter").
		Joins("JOIN posts ON posts.id = reports.post_id").
		Where("posts.club_id = ?", clubID)
	if resolved != nil {
		query = query.Where("reports.is_resolved = ?", *resolved)
	}

	var reports []models.Report
	err := query.Order("reports.created_at DESC").Find(&reports).Error
	return reports, err
}
