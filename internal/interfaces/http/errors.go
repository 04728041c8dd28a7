package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/coursehub/internal/course"
	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/logging"
	"github.com/pot-code/coursehub/internal/infrastructure/validate"
	"github.com/pot-code/coursehub/internal/interfaces/rest"
	"go.uber.org/zap"
)

// DashboardPath where clients are sent back to when a lesson can not be shown
const DashboardPath = "/api/v1/lesson/dashboard"

func traceID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func standardError(c echo.Context, code int, detail string) error {
	return c.JSON(code, rest.NewRESTStandardError(code, detail).SetTraceID(traceID(c)))
}

func validationError(c echo.Context, detail string, params []*validate.FieldError) error {
	return c.JSON(http.StatusBadRequest,
		rest.NewRESTValidationError(http.StatusBadRequest, detail, params).SetTraceID(traceID(c)))
}

func bindError(c echo.Context, entity string, err error) error {
	detail := fmt.Sprintf("Failed to bind %s", entity)
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		detail = fmt.Sprintf("%s: %s", detail, he.Internal.Error())
	}
	return standardError(c, http.StatusUnprocessableEntity, detail)
}

// renderError replies known domain errors, anything else is returned to the ErrorHandling middleware
func renderError(c echo.Context, err error) error {
	var answerErr *course.AnswerError
	switch {
	case errors.Is(err, domain.ErrLessonNotFound):
		return c.JSON(http.StatusNotFound,
			rest.NewRESTStandardError(http.StatusNotFound, err.Error()).
				SetTraceID(traceID(c)).
				WithLink("dashboard", DashboardPath))
	case errors.Is(err, domain.ErrNoQuiz):
		return standardError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrLessonLocked),
		errors.Is(err, domain.ErrUserTooManyRetry):
		return standardError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrDuplicatedUser),
		errors.Is(err, domain.ErrQuizRequired):
		return standardError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNoSuchUser):
		return standardError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInvalidProgress):
		return validationError(c, "Failed to validate fields",
			[]*validate.FieldError{validate.NewFieldError("percent", err.Error())})
	case errors.As(err, &answerErr):
		return validationError(c, "Failed to grade answers",
			[]*validate.FieldError{validate.NewFieldError(fmt.Sprintf("answers[%d]", answerErr.Index), answerErr.Err.Error())})
	case errors.Is(err, course.ErrAnswerCountMismatch),
		errors.Is(err, course.ErrEmptyQuiz):
		return validationError(c, "Failed to grade answers",
			[]*validate.FieldError{validate.NewFieldError("answers", err.Error())})
	case errors.Is(err, domain.ErrProgressNotSaved):
		logging.ExtractLoggerFromContext(c.Request().Context()).Error(err.Error())
		return standardError(c, http.StatusInternalServerError, domain.ErrProgressNotSaved.Error())
	}
	return err
}

// logFailure logs err against the request scoped logger
func logFailure(c echo.Context, msg string, err error) {
	logging.ExtractLoggerFromContext(c.Request().Context()).Error(msg, zap.Error(err))
}
