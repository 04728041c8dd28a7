package domain

import (
	"context"
	"time"
)

type LessonModel struct {
	ID              string  `json:"id"`
	OrderNumber     int     `json:"order_number"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	VideoURL        *string `json:"video_url"`
	DurationMinutes *int    `json:"duration_minutes"`
}

type LessonFileModel struct {
	ID       string  `json:"id"`
	LessonID string  `json:"lesson_id"`
	FileName string  `json:"file_name"`
	FileURL  string  `json:"file_url"`
	FileType *string `json:"file_type"`
}

// ProgressModel one record per (user, lesson)
type ProgressModel struct {
	ID              string     `json:"-"`
	UserID          string     `json:"-"`
	LessonID        string     `json:"lesson_id"`
	Completed       bool       `json:"completed"`
	ProgressPercent int        `json:"progress_percent"`
	CompletedAt     *time.Time `json:"completed_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type LessonRepository interface {
	ListLessons(ctx context.Context) ([]*LessonModel, error)
	FindLesson(ctx context.Context, id string) (*LessonModel, error)
	ListFiles(ctx context.Context, lessonID string) ([]*LessonFileModel, error)
}

type ProgressRepository interface {
	ListProgressByUser(ctx context.Context, userID string) ([]*ProgressModel, error)
	FindProgress(ctx context.Context, userID, lessonID string) (*ProgressModel, error)
	// SaveProgress upserts by (user, lesson). Completion is never revoked, the stored
	// state is written back into p.
	SaveProgress(ctx context.Context, p *ProgressModel) error
}

type LessonUseCase interface {
	Dashboard(ctx context.Context, session *Session) (*DashboardView, error)
	Detail(ctx context.Context, session *Session, lessonID string) (*LessonDetailView, error)
	Curriculum(ctx context.Context) (*CurriculumView, error)
}
