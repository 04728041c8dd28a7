package domain

import (
	"context"
	"time"
)

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

type QuizModel struct {
	ID        string         `json:"id"`
	LessonID  string         `json:"lesson_id"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizResultModel one record per (user, quiz), a retake overwrites it
type QuizResultModel struct {
	ID             string    `json:"-"`
	UserID         string    `json:"-"`
	QuizID         string    `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Answers        []int     `json:"answers"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// QuizOutcome graded submission
type QuizOutcome struct {
	CorrectCount int    `json:"correct_count"`
	Total        int    `json:"total"`
	Score        int    `json:"score"`
	Passed       bool   `json:"passed"`
	Completed    bool   `json:"completed"`
	Persisted    bool   `json:"persisted"`
	Notice       string `json:"notice,omitempty"`
}

type QuizRepository interface {
	FindQuizByLesson(ctx context.Context, lessonID string) (*QuizModel, error)
	FindResult(ctx context.Context, userID, quizID string) (*QuizResultModel, error)
	// SaveResult upserts by (user, quiz)
	SaveResult(ctx context.Context, r *QuizResultModel) error
}

type ProgressUseCase interface {
	SubmitQuiz(ctx context.Context, session *Session, lessonID string, answers []int) (*QuizOutcome, error)
	MarkComplete(ctx context.Context, session *Session, lessonID string) (*ProgressModel, error)
	ReportProgress(ctx context.Context, session *Session, lessonID string, percent int) (*ProgressModel, error)
}
