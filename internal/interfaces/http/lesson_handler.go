package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/auth"
)

type LessonHandler struct {
	lessonUseCase domain.LessonUseCase
	jwtUtil       *auth.JWTUtil
}

func NewLessonHandler(LessonUseCase domain.LessonUseCase, JWTUtil *auth.JWTUtil) *LessonHandler {
	handler := &LessonHandler{LessonUseCase, JWTUtil}
	return handler
}

// HandleDashboard ordered lessons with unlock state and the learner's totals
func (lh *LessonHandler) HandleDashboard(c echo.Context) (err error) {
	session := lh.jwtUtil.GetContextSession(c)
	view, err := lh.lessonUseCase.Dashboard(c.Request().Context(), session)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// HandleLessonDetail ...
func (lh *LessonHandler) HandleLessonDetail(c echo.Context) (err error) {
	session := lh.jwtUtil.GetContextSession(c)
	view, err := lh.lessonUseCase.Detail(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// HandleLanding public curriculum, needs no session
func (lh *LessonHandler) HandleLanding(c echo.Context) (err error) {
	view, err := lh.lessonUseCase.Curriculum(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
