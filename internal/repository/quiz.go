package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/driver"
	"github.com/pot-code/coursehub/internal/infrastructure/uuid"
)

type QuizRepository struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.QuizRepository = &QuizRepository{}

func NewQuizRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *QuizRepository {
	return &QuizRepository{
		Conn:          Conn,
		UUIDGenerator: UUIDGenerator,
	}
}

// FindQuizByLesson returns nil if the lesson has no quiz
func (repo *QuizRepository) FindQuizByLesson(ctx context.Context, lessonID string) (*domain.QuizModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT id, lesson_id, title, questions
	FROM quizzes WHERE lesson_id = $1`, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var (
		quiz      = new(domain.QuizModel)
		questions string
	)
	if err := rows.Scan(&quiz.ID, &quiz.LessonID, &quiz.Title, &questions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(questions), &quiz.Questions); err != nil {
		return nil, fmt.Errorf("malformed questions of quiz %s: %w", quiz.ID, err)
	}
	return quiz, nil
}

func (repo *QuizRepository) FindResult(ctx context.Context, userID, quizID string) (*domain.QuizResultModel, error) {
	return findResult(ctx, repo.Conn, userID, quizID)
}

func findResult(ctx context.Context, conn driver.ITransactionalDB, userID, quizID string) (*domain.QuizResultModel, error) {
	rows, err := conn.QueryContext(ctx, `SELECT id, user_id, quiz_id, score, total_questions, answers, updated_at
	FROM quiz_results WHERE user_id = $1 AND quiz_id = $2`, userID, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var (
		result    = new(domain.QuizResultModel)
		answers   string
		updatedAt sql.NullTime
	)
	if err := rows.Scan(&result.ID, &result.UserID, &result.QuizID, &result.Score, &result.TotalQuestions,
		&answers, &updatedAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		result.UpdatedAt = updatedAt.Time
	}
	if err := json.Unmarshal([]byte(answers), &result.Answers); err != nil {
		return nil, fmt.Errorf("malformed answers of quiz result %s: %w", result.ID, err)
	}
	return result, nil
}

// SaveResult a retake overwrites the previous result of the same quiz
func (repo *QuizRepository) SaveResult(ctx context.Context, r *domain.QuizResultModel) error {
	answers, err := json.Marshal(r.Answers)
	if err != nil {
		return err
	}

	err = repo.saveResult(ctx, r, string(answers))
	if driver.IsUniqueViolation(err) {
		// lost the race for the first insert, the retry overwrites the winner
		err = repo.saveResult(ctx, r, string(answers))
	}
	return err
}

func (repo *QuizRepository) saveResult(ctx context.Context, r *domain.QuizResultModel, answers string) error {
	return withTx(ctx, repo.Conn, func(tx driver.ITransactionalDB) error {
		existing, err := findResult(ctx, tx, r.UserID, r.QuizID)
		if err != nil {
			return err
		}

		if existing == nil {
			id, err := repo.UUIDGenerator.Generate()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO quiz_results(id, user_id, quiz_id, score, total_questions, answers, updated_at)
			VALUES($1, $2, $3, $4, $5, $6, $7)`, id, r.UserID, r.QuizID, r.Score, r.TotalQuestions,
				answers, r.UpdatedAt.UTC()); err != nil {
				return err
			}
			r.ID = id
			return nil
		}

		if _, err := tx.ExecContext(ctx, `UPDATE quiz_results
		SET score = $1,
			total_questions = $2,
			answers = $3,
			updated_at = $4
		WHERE id = $5`, r.Score, r.TotalQuestions, answers, r.UpdatedAt.UTC(), existing.ID); err != nil {
			return err
		}
		r.ID = existing.ID
		return nil
	})
}
