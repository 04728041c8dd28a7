package usecase

import (
	"context"
	"fmt"

	"github.com/pot-code/coursehub/internal/course"
	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/logging"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// NoticeNotPersisted shown when a graded submission could not be stored
const NoticeNotPersisted = "Your answers were graded but could not be saved, please submit again"

// ProgressUseCaseImpl write side of the course, each operation is one
// sequential chain without rollback
type ProgressUseCaseImpl struct {
	LessonRepository   domain.LessonRepository
	ProgressRepository domain.ProgressRepository
	QuizRepository     domain.QuizRepository
}

var _ domain.ProgressUseCase = &ProgressUseCaseImpl{}

// NewProgressUseCase ...
func NewProgressUseCase(
	LessonRepository domain.LessonRepository,
	ProgressRepository domain.ProgressRepository,
	QuizRepository domain.QuizRepository,
) *ProgressUseCaseImpl {
	return &ProgressUseCaseImpl{
		LessonRepository:   LessonRepository,
		ProgressRepository: ProgressRepository,
		QuizRepository:     QuizRepository,
	}
}

// gate returns the learner's current record of an unlocked lesson
func (pu *ProgressUseCaseImpl) gate(ctx context.Context, session *domain.Session, lessonID string) (*domain.ProgressModel, error) {
	lesson, err := pu.LessonRepository.FindLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, domain.ErrLessonNotFound
	}

	lessons, err := pu.LessonRepository.ListLessons(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := pu.ProgressRepository.ListProgressByUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	ordered := course.SortLessons(lessons)
	index := course.IndexProgress(progress)
	if !course.IsUnlocked(ordered, index, course.Position(ordered, lessonID)) {
		return nil, domain.ErrLessonLocked
	}
	return index[lessonID], nil
}

// SubmitQuiz grades the answers, stores the result and completes the lesson on a pass.
//
// Storage failures do not fail the submission, they are reported through
// Persisted and Notice.
func (pu *ProgressUseCaseImpl) SubmitQuiz(ctx context.Context, session *domain.Session, lessonID string, answers []int) (*domain.QuizOutcome, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.SubmitQuiz", "service")
	defer apmSpan.End()

	current, err := pu.gate(ctx, session, lessonID)
	if err != nil {
		return nil, err
	}
	quiz, err := pu.QuizRepository.FindQuizByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, domain.ErrNoQuiz
	}

	grade, err := course.GradeQuiz(quiz.Questions, answers)
	if err != nil {
		return nil, err
	}
	outcome := &domain.QuizOutcome{
		CorrectCount: grade.CorrectCount,
		Total:        grade.Total,
		Score:        grade.Score,
		Passed:       grade.Passed,
		Completed:    course.StateOf(current) == course.Completed,
		Persisted:    true,
	}

	logger := logging.ExtractLoggerFromContext(ctx)
	now := nowFunc()
	if err := pu.QuizRepository.SaveResult(ctx, &domain.QuizResultModel{
		UserID:         session.UserID,
		QuizID:         quiz.ID,
		Score:          grade.Score,
		TotalQuestions: grade.Total,
		Answers:        answers,
		UpdatedAt:      now,
	}); err != nil {
		logger.Error("Failed to save quiz result", zap.String("quiz.id", quiz.ID), zap.Error(err))
		outcome.Persisted = false
	}

	if grade.Passed {
		next := course.Complete(current, session.UserID, lessonID, now)
		if err := pu.ProgressRepository.SaveProgress(ctx, next); err != nil {
			logger.Error("Failed to complete lesson", zap.String("lesson.id", lessonID), zap.Error(err))
			outcome.Persisted = false
		} else {
			outcome.Completed = next.Completed
		}
	}

	if !outcome.Persisted {
		outcome.Notice = NoticeNotPersisted
	}
	return outcome, nil
}

// MarkComplete completes a lesson that has no quiz
func (pu *ProgressUseCaseImpl) MarkComplete(ctx context.Context, session *domain.Session, lessonID string) (*domain.ProgressModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.MarkComplete", "service")
	defer apmSpan.End()

	current, err := pu.gate(ctx, session, lessonID)
	if err != nil {
		return nil, err
	}
	quiz, err := pu.QuizRepository.FindQuizByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if quiz != nil && len(quiz.Questions) > 0 {
		return nil, domain.ErrQuizRequired
	}

	next := course.Complete(current, session.UserID, lessonID, nowFunc())
	if err := pu.ProgressRepository.SaveProgress(ctx, next); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProgressNotSaved, err.Error())
	}
	return next, nil
}

// ReportProgress records partial progress such as the video playback position
func (pu *ProgressUseCaseImpl) ReportProgress(ctx context.Context, session *domain.Session, lessonID string, percent int) (*domain.ProgressModel, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.ReportProgress", "service")
	defer apmSpan.End()

	if percent < 0 || percent > 100 {
		return nil, domain.ErrInvalidProgress
	}
	current, err := pu.gate(ctx, session, lessonID)
	if err != nil {
		return nil, err
	}

	next, err := course.Advance(current, session.UserID, lessonID, percent, nowFunc())
	if err != nil {
		return nil, err
	}
	if err := pu.ProgressRepository.SaveProgress(ctx, next); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProgressNotSaved, err.Error())
	}
	return next, nil
}
