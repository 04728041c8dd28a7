package http

import (
	"context"
	"sync"
	"time"

	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/driver"
)

type fakeKV struct {
	mu   sync.Mutex
	keys map[string]time.Duration
}

var _ driver.KeyValueDB = &fakeKV{}

func newFakeKV() *fakeKV {
	return &fakeKV{keys: make(map[string]time.Duration)}
}

func (f *fakeKV) SetEX(key string, value string, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[key] = expiration
	return nil
}

func (f *fakeKV) Get(key string) (string, error) {
	return "", nil
}

func (f *fakeKV) Exists(key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.keys[key]
	return ok, nil
}

func (f *fakeKV) Ping() error {
	return nil
}

type fakeUserUseCase struct {
	user      *domain.UserModel
	signUpErr error
	signInErr error
}

func (f *fakeUserUseCase) SignUp(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	user := *post
	user.ID = "u1"
	return &user, nil
}

func (f *fakeUserUseCase) SignIn(ctx context.Context, email, password string) (*domain.UserModel, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.user, nil
}

func (f *fakeUserUseCase) Exists(ctx context.Context, email string) (bool, error) {
	return f.user != nil && f.user.Email == email, nil
}

func (f *fakeUserUseCase) Profile(ctx context.Context, session *domain.Session) (*domain.ProfileModel, error) {
	if f.user == nil || f.user.ID != session.UserID {
		return nil, domain.ErrNoSuchUser
	}
	return f.user.Profile(), nil
}

type fakeLessonUseCase struct {
	dashboard *domain.DashboardView
	detail    *domain.LessonDetailView
	detailErr error
	sessions  []*domain.Session
}

func (f *fakeLessonUseCase) Dashboard(ctx context.Context, session *domain.Session) (*domain.DashboardView, error) {
	f.sessions = append(f.sessions, session)
	return f.dashboard, nil
}

func (f *fakeLessonUseCase) Detail(ctx context.Context, session *domain.Session, lessonID string) (*domain.LessonDetailView, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeLessonUseCase) Curriculum(ctx context.Context) (*domain.CurriculumView, error) {
	return &domain.CurriculumView{
		Title: "Go in Practice",
		Lessons: []*domain.CurriculumEntry{
			{Position: 1, Title: "Intro"},
		},
	}, nil
}

type fakeProgressUseCase struct {
	mu        sync.Mutex
	outcome   *domain.QuizOutcome
	err       error
	answers   []int
	percents  []int
	lessonIDs []string
}

func (f *fakeProgressUseCase) SubmitQuiz(ctx context.Context, session *domain.Session, lessonID string, answers []int) (*domain.QuizOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = answers
	f.lessonIDs = append(f.lessonIDs, lessonID)
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func (f *fakeProgressUseCase) MarkComplete(ctx context.Context, session *domain.Session, lessonID string) (*domain.ProgressModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lessonIDs = append(f.lessonIDs, lessonID)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ProgressModel{UserID: session.UserID, LessonID: lessonID, Completed: true, ProgressPercent: 100}, nil
}

func (f *fakeProgressUseCase) ReportProgress(ctx context.Context, session *domain.Session, lessonID string, percent int) (*domain.ProgressModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lessonIDs = append(f.lessonIDs, lessonID)
	if f.err != nil {
		return nil, f.err
	}
	if percent < 0 || percent > 100 {
		return nil, domain.ErrInvalidProgress
	}
	f.percents = append(f.percents, percent)
	return &domain.ProgressModel{UserID: session.UserID, LessonID: lessonID, ProgressPercent: percent}, nil
}
