package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type SurveyGormRepository struct {
	db *gorm.DB
}

func NewSurveyGormRepository(db *gorm.DB) *SurveyGormRepository {
	return &SurveyGormRepository{db: db}
}

func (r *SurveyGormRepository) Create(ctx context.Context, s model.Survey) (model.Survey, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Survey{}, err
	}
	return s, nil
}

// 新しい順
func (r *SurveyGormRepository) ListAll(ctx context.Context) ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&surveys).Error
	if err != nil {
		return []model.Survey{}, err
	}
	return surveys, nil
}
