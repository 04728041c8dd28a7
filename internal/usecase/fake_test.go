package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/pot-code/coursehub/internal/domain"
)

type fakeLessonRepo struct {
	lessons  []*domain.LessonModel
	files    map[string][]*domain.LessonFileModel
	listErr  error
	findErr  error
	filesErr error
}

func (f *fakeLessonRepo) ListLessons(ctx context.Context) ([]*domain.LessonModel, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lessons, nil
}

func (f *fakeLessonRepo) FindLesson(ctx context.Context, id string) (*domain.LessonModel, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, l := range f.lessons {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLessonRepo) ListFiles(ctx context.Context, lessonID string) ([]*domain.LessonFileModel, error) {
	if f.filesErr != nil {
		return nil, f.filesErr
	}
	return f.files[lessonID], nil
}

type fakeProgressRepo struct {
	mu      sync.Mutex
	records map[string]*domain.ProgressModel // keyed by user/lesson
	listErr error
	saveErr error
	saves   int
}

func newFakeProgressRepo(records ...*domain.ProgressModel) *fakeProgressRepo {
	f := &fakeProgressRepo{records: make(map[string]*domain.ProgressModel)}
	for _, r := range records {
		f.records[r.UserID+"/"+r.LessonID] = r
	}
	return f
}

func (f *fakeProgressRepo) ListProgressByUser(ctx context.Context, userID string) ([]*domain.ProgressModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*domain.ProgressModel
	for _, r := range f.records {
		if r.UserID == userID {
			copied := *r
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeProgressRepo) FindProgress(ctx context.Context, userID, lessonID string) (*domain.ProgressModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[userID+"/"+lessonID], nil
}

func (f *fakeProgressRepo) SaveProgress(ctx context.Context, p *domain.ProgressModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	key := p.UserID + "/" + p.LessonID
	if existing, ok := f.records[key]; ok {
		p.ID = existing.ID
		p.Completed = p.Completed || existing.Completed
		if existing.CompletedAt != nil {
			p.CompletedAt = existing.CompletedAt
		}
	} else {
		p.ID = "progress-" + key
	}
	stored := *p
	f.records[key] = &stored
	return nil
}

type fakeQuizRepo struct {
	mu        sync.Mutex
	quizzes   map[string]*domain.QuizModel // keyed by lesson
	results   map[string]*domain.QuizResultModel
	findErr   error
	resultErr error
	saveErr   error
}

func newFakeQuizRepo(quizzes ...*domain.QuizModel) *fakeQuizRepo {
	f := &fakeQuizRepo{
		quizzes: make(map[string]*domain.QuizModel),
		results: make(map[string]*domain.QuizResultModel),
	}
	for _, q := range quizzes {
		f.quizzes[q.LessonID] = q
	}
	return f
}

func (f *fakeQuizRepo) FindQuizByLesson(ctx context.Context, lessonID string) (*domain.QuizModel, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.quizzes[lessonID], nil
}

func (f *fakeQuizRepo) FindResult(ctx context.Context, userID, quizID string) (*domain.QuizResultModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resultErr != nil {
		return nil, f.resultErr
	}
	return f.results[userID+"/"+quizID], nil
}

func (f *fakeQuizRepo) SaveResult(ctx context.Context, r *domain.QuizResultModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	key := r.UserID + "/" + r.QuizID
	if existing, ok := f.results[key]; ok {
		r.ID = existing.ID
	} else {
		r.ID = "result-" + key
	}
	stored := *r
	f.results[key] = &stored
	return nil
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.UserModel // keyed by id
	findErr   error
	updateErr error
	nextID    int
}

func newFakeUserRepo(users ...*domain.UserModel) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*domain.UserModel)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.UserModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.UserModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateLoginState(ctx context.Context, user *domain.UserModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if u, ok := f.users[user.ID]; ok {
		u.LoginRetry = user.LoginRetry
		u.LastLogin = user.LastLogin
	}
	return nil
}

func (f *fakeUserRepo) SaveUser(ctx context.Context, user *domain.UserModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrDuplicatedUser
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	stored := *user
	f.users[user.ID] = &stored
	return nil
}
