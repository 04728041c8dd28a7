package usecase

import (
	"context"

	"github.com/pot-code/coursehub/internal/course"
	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/logging"
	"go.elastic.co/apm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LessonUseCaseImpl read side of the course. Page-load reads run concurrently,
// a failed read is logged and the view is marked partial.
type LessonUseCaseImpl struct {
	LessonRepository   domain.LessonRepository
	ProgressRepository domain.ProgressRepository
	QuizRepository     domain.QuizRepository
	UserRepository     domain.UserRepository
	CourseTitle        string
}

var _ domain.LessonUseCase = &LessonUseCaseImpl{}

// NewLessonUseCase ...
func NewLessonUseCase(
	LessonRepository domain.LessonRepository,
	ProgressRepository domain.ProgressRepository,
	QuizRepository domain.QuizRepository,
	UserRepository domain.UserRepository,
	CourseTitle string,
) *LessonUseCaseImpl {
	return &LessonUseCaseImpl{
		LessonRepository:   LessonRepository,
		ProgressRepository: ProgressRepository,
		QuizRepository:     QuizRepository,
		UserRepository:     UserRepository,
		CourseTitle:        CourseTitle,
	}
}

// Dashboard ordered lessons of the learner with unlock state and totals
func (lu *LessonUseCaseImpl) Dashboard(ctx context.Context, session *domain.Session) (*domain.DashboardView, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LessonUseCaseImpl.Dashboard", "service")
	defer apmSpan.End()

	var (
		g           errgroup.Group
		user        *domain.UserModel
		lessons     []*domain.LessonModel
		progress    []*domain.ProgressModel
		userErr     error
		lessonsErr  error
		progressErr error
	)
	g.Go(func() error {
		user, userErr = lu.UserRepository.FindByID(ctx, session.UserID)
		return nil
	})
	g.Go(func() error {
		lessons, lessonsErr = lu.LessonRepository.ListLessons(ctx)
		return nil
	})
	g.Go(func() error {
		progress, progressErr = lu.ProgressRepository.ListProgressByUser(ctx, session.UserID)
		return nil
	})
	g.Wait()

	view := &domain.DashboardView{Lessons: []*domain.LessonEntry{}}
	if userErr != nil {
		degraded(ctx, "profile", userErr)
		view.Partial = true
	} else if user != nil {
		view.Profile = user.Profile()
	}
	if lessonsErr != nil {
		degraded(ctx, "lessons", lessonsErr)
		view.Partial = true
	}
	if progressErr != nil {
		degraded(ctx, "progress", progressErr)
		view.Partial = true
	}

	ordered := course.SortLessons(lessons)
	index := course.IndexProgress(progress)
	unlocked := course.EvaluateUnlocks(ordered, index)
	for i, l := range ordered {
		entry := &domain.LessonEntry{
			LessonModel: l,
			Position:    i,
			Unlocked:    unlocked[i],
		}
		if p, ok := index[l.ID]; ok {
			entry.Completed = p.Completed
			entry.ProgressPercent = p.ProgressPercent
		}
		view.Lessons = append(view.Lessons, entry)
	}
	view.Summary = course.Summarize(ordered, index)
	return view, nil
}

// Detail single lesson with files, quiz and navigation.
//
// A lesson that cannot be read is reported as not found. Gating is enforced
// when the lesson list and progress are both available.
func (lu *LessonUseCaseImpl) Detail(ctx context.Context, session *domain.Session, lessonID string) (*domain.LessonDetailView, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LessonUseCaseImpl.Detail", "service")
	defer apmSpan.End()

	var (
		g          errgroup.Group
		lesson     *domain.LessonModel
		lessons    []*domain.LessonModel
		files      []*domain.LessonFileModel
		quiz       *domain.QuizModel
		result     *domain.QuizResultModel
		progress   []*domain.ProgressModel
		lessonErr  error
		lessonsErr error
		filesErr   error
		quizErr    error
		resultErr  error
		progErr    error
	)
	g.Go(func() error {
		lesson, lessonErr = lu.LessonRepository.FindLesson(ctx, lessonID)
		return nil
	})
	g.Go(func() error {
		lessons, lessonsErr = lu.LessonRepository.ListLessons(ctx)
		return nil
	})
	g.Go(func() error {
		files, filesErr = lu.LessonRepository.ListFiles(ctx, lessonID)
		return nil
	})
	g.Go(func() error {
		quiz, quizErr = lu.QuizRepository.FindQuizByLesson(ctx, lessonID)
		if quizErr == nil && quiz != nil {
			result, resultErr = lu.QuizRepository.FindResult(ctx, session.UserID, quiz.ID)
		}
		return nil
	})
	g.Go(func() error {
		progress, progErr = lu.ProgressRepository.ListProgressByUser(ctx, session.UserID)
		return nil
	})
	g.Wait()

	if lessonErr != nil {
		logging.ExtractLoggerFromContext(ctx).Error("Failed to load lesson",
			zap.String("lesson.id", lessonID), zap.String("error.message", lessonErr.Error()))
		return nil, domain.ErrLessonNotFound
	}
	if lesson == nil {
		return nil, domain.ErrLessonNotFound
	}

	view := &domain.LessonDetailView{
		Lesson:   lesson,
		Position: -1,
		Files:    []*domain.LessonFileModel{},
	}
	for source, err := range map[string]error{
		"lessons":     lessonsErr,
		"files":       filesErr,
		"quiz":        quizErr,
		"quiz result": resultErr,
		"progress":    progErr,
	} {
		if err != nil {
			degraded(ctx, source, err)
			view.Partial = true
		}
	}

	index := course.IndexProgress(progress)
	current := index[lessonID]
	if lessonsErr == nil {
		ordered := course.SortLessons(lessons)
		pos := course.Position(ordered, lessonID)
		if pos >= 0 && progErr == nil && !course.IsUnlocked(ordered, index, pos) {
			return nil, domain.ErrLessonLocked
		}
		view.Position = pos
		if pos > 0 {
			prev := ordered[pos-1]
			view.Previous = &domain.LessonLink{ID: prev.ID, Title: prev.Title, Enabled: true}
		}
		if pos >= 0 && pos < len(ordered)-1 {
			next := ordered[pos+1]
			view.Next = &domain.LessonLink{
				ID:      next.ID,
				Title:   next.Title,
				Enabled: course.StateOf(current) == course.Completed,
			}
		}
	}

	if files != nil {
		view.Files = files
	}
	if quiz != nil && len(quiz.Questions) > 0 {
		view.Quiz = quizView(quiz)
		view.LastResult = result
	}
	view.Progress = current
	return view, nil
}

// quizView drops the answer key
func quizView(quiz *domain.QuizModel) *domain.QuizView {
	view := &domain.QuizView{
		ID:        quiz.ID,
		Title:     quiz.Title,
		Questions: make([]domain.QuizQuestionView, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		view.Questions[i] = domain.QuizQuestionView{Question: q.Question, Options: q.Options}
	}
	return view
}

// Curriculum public outline of the course
func (lu *LessonUseCaseImpl) Curriculum(ctx context.Context) (*domain.CurriculumView, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "LessonUseCaseImpl.Curriculum", "service")
	defer apmSpan.End()

	view := &domain.CurriculumView{Title: lu.CourseTitle, Lessons: []*domain.CurriculumEntry{}}
	lessons, err := lu.LessonRepository.ListLessons(ctx)
	if err != nil {
		degraded(ctx, "lessons", err)
		view.Partial = true
		return view, nil
	}
	for i, l := range course.SortLessons(lessons) {
		view.Lessons = append(view.Lessons, &domain.CurriculumEntry{
			Position:        i,
			Title:           l.Title,
			DurationMinutes: l.DurationMinutes,
		})
	}
	return view, nil
}
