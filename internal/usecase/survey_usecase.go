package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type SurveyUsecase struct {
	surveyRepo repo.SurveyRepository
}

func NewSurveyUsecase(surveyRepo repo.SurveyRepository) *SurveyUsecase {
	return &SurveyUsecase{surveyRepo: surveyRepo}
}

type SurveyInput struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

func (u *SurveyUsecase) CreateSurvey(ctx context.Context, in SurveyInput) (model.Survey, error) {
	fields := map[string]string{}
	if in.Rating < 1 || in.Rating > 5 {
		fields["rating"] = "must be between 1 and 5"
	}
	if in.Comment != nil && len(*in.Comment) > 255 {
		fields["comment"] = "must be at most 255 characters"
	}
	if len(fields) > 0 {
		return model.Survey{}, NewValidationError(fields)
	}

	created, err := u.surveyRepo.Create(ctx, model.Survey{
		Rating:  in.Rating,
		Comment: in.Comment,
	})
	if err != nil {
		return model.Survey{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *SurveyUsecase) ListSurveys(ctx context.Context) ([]model.Survey, error) {
	surveys, err := u.surveyRepo.ListAll(ctx)
	if err != nil {
		return []model.Survey{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return surveys, nil
}
