package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SurveyHandler struct {
	uc *usecase.SurveyUsecase
}

func NewSurveyHandler(uc *usecase.SurveyUsecase) *SurveyHandler {
	return &SurveyHandler{uc: uc}
}

// アンケートは未ログインでも投稿できる
func (h *SurveyHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/survey", h.list)
	e.POST("/survey", h.store)
}

func (h *SurveyHandler) list(c echo.Context) error {
	surveys, err := h.uc.ListSurveys(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, surveys)
}

func (h *SurveyHandler) store(c echo.Context) error {
	var req usecase.SurveyInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	survey, err := h.uc.CreateSurvey(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Thank you for your feedback and Suggestions!",
		"survey":  survey,
	})
}
