package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/justsurfingit/job-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) Create(ctx context.Context, app *models.Application) error {
	if err := r.DB.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("insert application: %w", translate(err))
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	if err := r.DB.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

// List returns one user's applications, newest first.
func (r *JobRepository) List(ctx context.Context, userID uint, filter models.ApplicationFilter) ([]models.Application, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		q = q.Where("(LOWER(company_name) LIKE ? OR LOWER(job_title) LIKE ?)", pattern, pattern)
	}

	apps := []models.Application{}
	if err := q.Order("created_at DESC, id DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// Update writes the change-set in a single UPDATE ... RETURNING and hands back
// the row as stored.
func (r *JobRepository) Update(ctx context.Context, id uint, changes models.ApplicationChanges) (*models.Application, error) {
	var app models.Application
	res := r.DB.WithContext(ctx).
		Model(&app).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(changes.Columns())
	if res.Error != nil {
		return nil, fmt.Errorf("update application %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &app, nil
}

func (r *JobRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Application{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete application %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus groups one user's applications by status.
func (r *JobRepository) CountByStatus(ctx context.Context, userID uint) (map[models.Status]int64, error) {
	var rows []struct {
		Status models.Status
		Count  int64
	}
	err := r.DB.WithContext(ctx).
		Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	counts := make(map[models.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
