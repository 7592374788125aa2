package repository

import (
	"context"

	"app/internal/domain/model"
)

type SurveyRepository interface {
	Create(ctx context.Context, s model.Survey) (model.Survey, error)
	ListAll(ctx context.Context) ([]model.Survey, error)
}
