package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pot-code/coursehub/internal/course"
	"github.com/pot-code/coursehub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var session = &domain.Session{UserID: "u1", Email: "ada@example.com", Name: "Ada"}

func threeLessons() *fakeLessonRepo {
	return &fakeLessonRepo{
		lessons: []*domain.LessonModel{
			{ID: "c", OrderNumber: 3, Title: "C"},
			{ID: "a", OrderNumber: 1, Title: "A"},
			{ID: "b", OrderNumber: 2, Title: "B"},
		},
		files: map[string][]*domain.LessonFileModel{
			"a": {{ID: "f1", LessonID: "a", FileName: "slides.pdf", FileURL: "https://files.example.com/slides.pdf"}},
		},
	}
}

func tenQuestionQuiz(lessonID string) *domain.QuizModel {
	quiz := &domain.QuizModel{ID: "quiz-" + lessonID, LessonID: lessonID, Title: "Check"}
	for i := 0; i < 10; i++ {
		quiz.Questions = append(quiz.Questions, domain.QuizQuestion{
			Question: "q", Options: []string{"w", "x", "y", "z"}, Correct: i % 4,
		})
	}
	return quiz
}

// answers with the first n answers correct
func answersWithCorrect(quiz *domain.QuizModel, n int) []int {
	answers := make([]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		if i < n {
			answers[i] = q.Correct
		} else {
			answers[i] = (q.Correct + 1) % len(q.Options)
		}
	}
	return answers
}

func completedRecord(lessonID string) *domain.ProgressModel {
	at := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	return &domain.ProgressModel{ID: "p-" + lessonID, UserID: "u1", LessonID: lessonID, Completed: true, ProgressPercent: 100, CompletedAt: &at}
}

func newLessonUseCase(lessons *fakeLessonRepo, progress *fakeProgressRepo, quizzes *fakeQuizRepo) *LessonUseCaseImpl {
	users := newFakeUserRepo(&domain.UserModel{ID: "u1", Email: "ada@example.com", FullName: "Ada", Phone: "09123456789"})
	return NewLessonUseCase(lessons, progress, quizzes, users, "Go in practice")
}

func TestLessonUseCase_Dashboard(t *testing.T) {
	lu := newLessonUseCase(threeLessons(), newFakeProgressRepo(completedRecord("a")), newFakeQuizRepo())

	view, err := lu.Dashboard(context.Background(), session)
	require.NoError(t, err)
	assert.False(t, view.Partial)
	require.NotNil(t, view.Profile)
	assert.Equal(t, "Ada", view.Profile.FullName)

	require.Len(t, view.Lessons, 3)
	var ids []string
	var unlocked []bool
	for _, l := range view.Lessons {
		ids = append(ids, l.ID)
		unlocked = append(unlocked, l.Unlocked)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, []bool{true, true, false}, unlocked)
	assert.True(t, view.Lessons[0].Completed)
	assert.Equal(t, 100, view.Lessons[0].ProgressPercent)
	assert.Equal(t, domain.CourseSummary{CompletedCount: 1, Total: 3, TotalProgress: 33}, view.Summary)
}

func TestLessonUseCase_Dashboard_partial(t *testing.T) {
	progress := newFakeProgressRepo(completedRecord("a"))
	progress.listErr = errors.New("timeout")
	lu := newLessonUseCase(threeLessons(), progress, newFakeQuizRepo())

	view, err := lu.Dashboard(context.Background(), session)
	require.NoError(t, err)
	assert.True(t, view.Partial)
	require.Len(t, view.Lessons, 3)
	assert.True(t, view.Lessons[0].Unlocked)
	assert.False(t, view.Lessons[1].Unlocked)

	lessons := threeLessons()
	lessons.listErr = errors.New("timeout")
	view, err = newLessonUseCase(lessons, newFakeProgressRepo(), newFakeQuizRepo()).Dashboard(context.Background(), session)
	require.NoError(t, err)
	assert.True(t, view.Partial)
	assert.Empty(t, view.Lessons)
	assert.NotNil(t, view.Profile)
}

func TestLessonUseCase_Detail(t *testing.T) {
	quiz := tenQuestionQuiz("b")
	quizzes := newFakeQuizRepo(quiz)
	quizzes.results["u1/"+quiz.ID] = &domain.QuizResultModel{ID: "r1", UserID: "u1", QuizID: quiz.ID, Score: 40, TotalQuestions: 10}
	lu := newLessonUseCase(threeLessons(), newFakeProgressRepo(completedRecord("a")), quizzes)
	ctx := context.Background()

	first, err := lu.Detail(ctx, session, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)
	assert.Nil(t, first.Previous)
	require.NotNil(t, first.Next)
	assert.Equal(t, "b", first.Next.ID)
	assert.True(t, first.Next.Enabled, "current lesson is completed")
	assert.Len(t, first.Files, 1)
	assert.Nil(t, first.Quiz)

	second, err := lu.Detail(ctx, session, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, &domain.LessonLink{ID: "a", Title: "A", Enabled: true}, second.Previous)
	assert.False(t, second.Next.Enabled)
	require.NotNil(t, second.Quiz)
	assert.Len(t, second.Quiz.Questions, 10)
	assert.Equal(t, 40, second.LastResult.Score)
	assert.Nil(t, second.Progress)
	assert.NotNil(t, second.Files)

	_, err = lu.Detail(ctx, session, "c")
	assert.ErrorIs(t, err, domain.ErrLessonLocked)

	_, err = lu.Detail(ctx, session, "missing")
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)
}

func TestLessonUseCase_Detail_degraded(t *testing.T) {
	ctx := context.Background()

	broken := threeLessons()
	broken.findErr = errors.New("boom")
	_, err := newLessonUseCase(broken, newFakeProgressRepo(), newFakeQuizRepo()).Detail(ctx, session, "a")
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)

	noFiles := threeLessons()
	noFiles.filesErr = errors.New("boom")
	view, err := newLessonUseCase(noFiles, newFakeProgressRepo(), newFakeQuizRepo()).Detail(ctx, session, "a")
	require.NoError(t, err)
	assert.True(t, view.Partial)
	assert.Empty(t, view.Files)

	noProgress := newFakeProgressRepo()
	noProgress.listErr = errors.New("boom")
	view, err = newLessonUseCase(threeLessons(), noProgress, newFakeQuizRepo()).Detail(ctx, session, "c")
	require.NoError(t, err, "gating needs progress")
	assert.True(t, view.Partial)
	assert.Equal(t, 2, view.Position)
	assert.Nil(t, view.Next)
}

func TestLessonUseCase_Curriculum(t *testing.T) {
	lu := newLessonUseCase(threeLessons(), newFakeProgressRepo(), newFakeQuizRepo())
	view, err := lu.Curriculum(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Go in practice", view.Title)
	require.Len(t, view.Lessons, 3)
	assert.Equal(t, "A", view.Lessons[0].Title)

	broken := threeLessons()
	broken.listErr = errors.New("boom")
	view, err = newLessonUseCase(broken, newFakeProgressRepo(), newFakeQuizRepo()).Curriculum(context.Background())
	require.NoError(t, err)
	assert.True(t, view.Partial)
	assert.Empty(t, view.Lessons)
}

func TestProgressUseCase_SubmitQuiz(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	withNow(t, now)
	ctx := context.Background()

	t.Run("seven of ten passes and completes", func(t *testing.T) {
		quiz := tenQuestionQuiz("a")
		progress := newFakeProgressRepo()
		quizzes := newFakeQuizRepo(quiz)
		pu := NewProgressUseCase(threeLessons(), progress, quizzes)

		outcome, err := pu.SubmitQuiz(ctx, session, "a", answersWithCorrect(quiz, 7))
		require.NoError(t, err)
		assert.Equal(t, &domain.QuizOutcome{CorrectCount: 7, Total: 10, Score: 70, Passed: true, Completed: true, Persisted: true}, outcome)

		stored := progress.records["u1/a"]
		require.NotNil(t, stored)
		assert.True(t, stored.Completed)
		assert.Equal(t, 100, stored.ProgressPercent)
		assert.Equal(t, now, *stored.CompletedAt)
	})

	t.Run("six of ten does not complete", func(t *testing.T) {
		quiz := tenQuestionQuiz("a")
		progress := newFakeProgressRepo()
		pu := NewProgressUseCase(threeLessons(), progress, newFakeQuizRepo(quiz))

		outcome, err := pu.SubmitQuiz(ctx, session, "a", answersWithCorrect(quiz, 6))
		require.NoError(t, err)
		assert.Equal(t, 60, outcome.Score)
		assert.False(t, outcome.Passed)
		assert.False(t, outcome.Completed)
		assert.Empty(t, progress.records)
	})

	t.Run("two of three scores 67", func(t *testing.T) {
		quiz := &domain.QuizModel{ID: "q", LessonID: "a", Questions: []domain.QuizQuestion{
			{Options: []string{"x", "y", "z"}, Correct: 0},
			{Options: []string{"x", "y", "z"}, Correct: 1},
			{Options: []string{"x", "y", "z"}, Correct: 2},
		}}
		progress := newFakeProgressRepo()
		pu := NewProgressUseCase(threeLessons(), progress, newFakeQuizRepo(quiz))

		outcome, err := pu.SubmitQuiz(ctx, session, "a", []int{0, 1, 0})
		require.NoError(t, err)
		assert.Equal(t, 2, outcome.CorrectCount)
		assert.Equal(t, 67, outcome.Score)
		assert.False(t, outcome.Completed)
		assert.Nil(t, progress.records["u1/a"])
	})

	t.Run("retake overwrites the result", func(t *testing.T) {
		quiz := tenQuestionQuiz("a")
		quizzes := newFakeQuizRepo(quiz)
		pu := NewProgressUseCase(threeLessons(), newFakeProgressRepo(), quizzes)

		_, err := pu.SubmitQuiz(ctx, session, "a", answersWithCorrect(quiz, 2))
		require.NoError(t, err)
		latest := answersWithCorrect(quiz, 9)
		_, err = pu.SubmitQuiz(ctx, session, "a", latest)
		require.NoError(t, err)

		require.Len(t, quizzes.results, 1)
		assert.Equal(t, latest, quizzes.results["u1/"+quiz.ID].Answers)
		assert.Equal(t, 90, quizzes.results["u1/"+quiz.ID].Score)
	})

	t.Run("failed retake keeps completion", func(t *testing.T) {
		quiz := tenQuestionQuiz("a")
		pu := NewProgressUseCase(threeLessons(), newFakeProgressRepo(completedRecord("a")), newFakeQuizRepo(quiz))
		outcome, err := pu.SubmitQuiz(ctx, session, "a", answersWithCorrect(quiz, 0))
		require.NoError(t, err)
		assert.False(t, outcome.Passed)
		assert.True(t, outcome.Completed)
	})

	t.Run("write failures are reported not returned", func(t *testing.T) {
		quiz := tenQuestionQuiz("a")
		progress := newFakeProgressRepo()
		progress.saveErr = errors.New("disk full")
		quizzes := newFakeQuizRepo(quiz)
		quizzes.saveErr = errors.New("disk full")
		pu := NewProgressUseCase(threeLessons(), progress, quizzes)

		outcome, err := pu.SubmitQuiz(ctx, session, "a", answersWithCorrect(quiz, 10))
		require.NoError(t, err)
		assert.Equal(t, 100, outcome.Score)
		assert.True(t, outcome.Passed)
		assert.False(t, outcome.Completed)
		assert.False(t, outcome.Persisted)
		assert.Equal(t, NoticeNotPersisted, outcome.Notice)
	})

	t.Run("result failure still completes", func(t *testing.T) {
		quiz := tenQuestionQuiz("a")
		progress := newFakeProgressRepo()
		quizzes := newFakeQuizRepo(quiz)
		quizzes.saveErr = errors.New("disk full")
		pu := NewProgressUseCase(threeLessons(), progress, quizzes)

		outcome, err := pu.SubmitQuiz(ctx, session, "a", answersWithCorrect(quiz, 8))
		require.NoError(t, err)
		assert.True(t, outcome.Completed)
		assert.False(t, outcome.Persisted)
		assert.True(t, progress.records["u1/a"].Completed)
	})

	t.Run("rejections", func(t *testing.T) {
		quiz := tenQuestionQuiz("b")
		pu := NewProgressUseCase(threeLessons(), newFakeProgressRepo(), newFakeQuizRepo(quiz, tenQuestionQuiz("a")))

		_, err := pu.SubmitQuiz(ctx, session, "b", answersWithCorrect(quiz, 10))
		assert.ErrorIs(t, err, domain.ErrLessonLocked)

		_, err = pu.SubmitQuiz(ctx, session, "zzz", nil)
		assert.ErrorIs(t, err, domain.ErrLessonNotFound)

		unanswered := answersWithCorrect(quiz, 10)
		unanswered[3] = -1
		_, err = pu.SubmitQuiz(ctx, session, "a", unanswered)
		assert.ErrorIs(t, err, course.ErrUnanswered)

		_, err = pu.SubmitQuiz(ctx, session, "a", []int{0})
		assert.ErrorIs(t, err, course.ErrAnswerCountMismatch)

		noQuiz := NewProgressUseCase(threeLessons(), newFakeProgressRepo(), newFakeQuizRepo())
		_, err = noQuiz.SubmitQuiz(ctx, session, "a", []int{0})
		assert.ErrorIs(t, err, domain.ErrNoQuiz)
	})
}

func TestProgressUseCase_MarkComplete(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	withNow(t, now)
	ctx := context.Background()

	progress := newFakeProgressRepo()
	pu := NewProgressUseCase(threeLessons(), progress, newFakeQuizRepo(tenQuestionQuiz("b")))

	p, err := pu.MarkComplete(ctx, session, "a")
	require.NoError(t, err)
	assert.Equal(t, course.Completed, course.StateOf(p))
	assert.Equal(t, 100, p.ProgressPercent)
	assert.Equal(t, now, *p.CompletedAt)

	_, err = pu.MarkComplete(ctx, session, "b")
	assert.ErrorIs(t, err, domain.ErrQuizRequired)

	_, err = pu.MarkComplete(ctx, session, "c")
	assert.ErrorIs(t, err, domain.ErrLessonLocked)

	progress.saveErr = errors.New("disk full")
	_, err = pu.MarkComplete(ctx, session, "a")
	assert.ErrorIs(t, err, domain.ErrProgressNotSaved)
}

func TestProgressUseCase_ReportProgress(t *testing.T) {
	withNow(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()
	progress := newFakeProgressRepo()
	pu := NewProgressUseCase(threeLessons(), progress, newFakeQuizRepo())

	p, err := pu.ReportProgress(ctx, session, "a", 100)
	require.NoError(t, err)
	assert.Equal(t, course.InProgress, course.StateOf(p), "a lesson without quiz completes only when marked")
	assert.Equal(t, 100, p.ProgressPercent)

	_, err = pu.ReportProgress(ctx, session, "a", 120)
	assert.ErrorIs(t, err, domain.ErrInvalidProgress)

	_, err = pu.MarkComplete(ctx, session, "a")
	require.NoError(t, err)
	p, err = pu.ReportProgress(ctx, session, "a", 20)
	require.NoError(t, err)
	assert.True(t, p.Completed)
	assert.Equal(t, 20, p.ProgressPercent)

	// b becomes reachable only now
	_, err = pu.ReportProgress(ctx, session, "b", 5)
	assert.NoError(t, err)
	assert.Equal(t, 4, progress.saves)
}
