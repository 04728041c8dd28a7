package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pot-code/coursehub/internal/course"
	"github.com/pot-code/coursehub/internal/domain"
	infra "github.com/pot-code/coursehub/internal/infrastructure"
	"github.com/pot-code/coursehub/internal/infrastructure/auth"
	"github.com/pot-code/coursehub/internal/infrastructure/validate"
)

// ProgressHandler learner writes: quiz submissions, completion and playback progress
type ProgressHandler struct {
	progressUseCase domain.ProgressUseCase
	jwtUtil         *auth.JWTUtil
	validator       validate.Validator
	websocket       *infra.Websocket
}

func NewProgressHandler(
	ProgressUseCase domain.ProgressUseCase,
	JWTUtil *auth.JWTUtil,
	Validator validate.Validator,
	Websocket *infra.Websocket,
) *ProgressHandler {
	handler := &ProgressHandler{ProgressUseCase, JWTUtil, Validator, Websocket}
	return handler
}

// quizPost a null entry is an unanswered question
type quizPost struct {
	Answers []*int `json:"answers" validate:"required,min=1"`
}

// selections rejects unanswered entries the same way grading does
func (qp *quizPost) selections() ([]int, error) {
	answers := make([]int, len(qp.Answers))
	for i, a := range qp.Answers {
		if a == nil {
			return nil, &course.AnswerError{Index: i, Err: course.ErrUnanswered}
		}
		answers[i] = *a
	}
	return answers, nil
}

type progressPost struct {
	Percent *int `json:"percent" validate:"required,min=0,max=100"`
}

// playbackMessage error is set on replies only
type playbackMessage struct {
	Percent  *int                  `json:"percent,omitempty"`
	Progress *domain.ProgressModel `json:"progress,omitempty"`
	Error    string                `json:"error,omitempty"`
}

func (ph *ProgressHandler) validate(c echo.Context) validate.Validator {
	return ph.validator.WithLocale(c.Request().Header.Get("Accept-Language"))
}

// HandleSubmitQuiz grade answers, a passing score completes the lesson
func (ph *ProgressHandler) HandleSubmitQuiz(c echo.Context) (err error) {
	post := new(quizPost)
	if err = c.Bind(post); err != nil {
		return bindError(c, "quiz answers", err)
	}
	if fe := ph.validate(c).Struct(post); fe != nil {
		return validationError(c, "Failed to validate fields", fe)
	}
	answers, err := post.selections()
	if err != nil {
		return renderError(c, err)
	}

	session := ph.jwtUtil.GetContextSession(c)
	outcome, err := ph.progressUseCase.SubmitQuiz(c.Request().Context(), session, c.Param("id"), answers)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, outcome)
}

// HandleMarkComplete complete a lesson that has no quiz
func (ph *ProgressHandler) HandleMarkComplete(c echo.Context) (err error) {
	session := ph.jwtUtil.GetContextSession(c)
	progress, err := ph.progressUseCase.MarkComplete(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, progress)
}

// HandleReportProgress ...
func (ph *ProgressHandler) HandleReportProgress(c echo.Context) (err error) {
	post := new(progressPost)
	if err = c.Bind(post); err != nil {
		return bindError(c, "progress", err)
	}
	if fe := ph.validate(c).Struct(post); fe != nil {
		return validationError(c, "Failed to validate fields", fe)
	}

	session := ph.jwtUtil.GetContextSession(c)
	progress, err := ph.progressUseCase.ReportProgress(c.Request().Context(), session, c.Param("id"), *post.Percent)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, progress)
}

// HandlePlayback websocket endpoint, every {"percent":n} frame is applied as partial progress.
// Rejected frames are answered with an error message and keep the connection open,
// except for lessons that are missing or locked.
func (ph *ProgressHandler) HandlePlayback() echo.HandlerFunc {
	return ph.websocket.WithHeartbeat(func(c echo.Context, conn *websocket.Conn) error {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		msg := new(playbackMessage)
		if err := json.Unmarshal(data, msg); err != nil || msg.Percent == nil {
			return conn.WriteJSON(&playbackMessage{Error: "Expected a message like {\"percent\": 50}"})
		}

		session := ph.jwtUtil.GetContextSession(c)
		progress, err := ph.progressUseCase.ReportProgress(c.Request().Context(), session, c.Param("id"), *msg.Percent)
		switch {
		case err == nil:
			return conn.WriteJSON(&playbackMessage{Progress: progress})
		case errors.Is(err, domain.ErrLessonNotFound), errors.Is(err, domain.ErrLessonLocked):
			conn.WriteJSON(&playbackMessage{Error: err.Error()})
			return err
		case errors.Is(err, domain.ErrInvalidProgress), errors.Is(err, domain.ErrProgressNotSaved):
			return conn.WriteJSON(&playbackMessage{Error: err.Error()})
		default:
			logFailure(c, "Failed to apply playback progress", err)
			return conn.WriteJSON(&playbackMessage{Error: domain.ErrProgressNotSaved.Error()})
		}
	})
}
