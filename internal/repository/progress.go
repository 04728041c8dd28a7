package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/driver"
	"github.com/pot-code/coursehub/internal/infrastructure/uuid"
)

type ProgressRepository struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.ProgressRepository = &ProgressRepository{}

func NewProgressRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *ProgressRepository {
	return &ProgressRepository{
		Conn:          Conn,
		UUIDGenerator: UUIDGenerator,
	}
}

const progressColumns = `id, user_id, lesson_id, completed, progress_percent, completed_at, updated_at`

func (repo *ProgressRepository) ListProgressByUser(ctx context.Context, userID string) ([]*domain.ProgressModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT `+progressColumns+`
	FROM user_progress WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ProgressModel
	for rows.Next() {
		item, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// FindProgress returns nil if the learner never touched the lesson
func (repo *ProgressRepository) FindProgress(ctx context.Context, userID, lessonID string) (*domain.ProgressModel, error) {
	return findProgress(ctx, repo.Conn, userID, lessonID)
}

func findProgress(ctx context.Context, conn driver.ITransactionalDB, userID, lessonID string) (*domain.ProgressModel, error) {
	rows, err := conn.QueryContext(ctx, `SELECT `+progressColumns+`
	FROM user_progress WHERE user_id = $1 AND lesson_id = $2`, userID, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		return scanProgress(rows)
	}
	return nil, rows.Err()
}

func scanProgress(rows driver.ISQLRows) (*domain.ProgressModel, error) {
	var (
		item        = new(domain.ProgressModel)
		completedAt sql.NullTime
		updatedAt   sql.NullTime
	)
	if err := rows.Scan(&item.ID, &item.UserID, &item.LessonID, &item.Completed, &item.ProgressPercent,
		&completedAt, &updatedAt); err != nil {
		return nil, err
	}
	item.CompletedAt = timePtr(completedAt)
	if updatedAt.Valid {
		item.UpdatedAt = updatedAt.Time
	}
	return item, nil
}

// SaveProgress upserts the record of (p.UserID, p.LessonID).
//
// An existing completion is never revoked and its completed_at is kept,
// p is refreshed with the stored row.
func (repo *ProgressRepository) SaveProgress(ctx context.Context, p *domain.ProgressModel) error {
	err := repo.saveProgress(ctx, p)
	if driver.IsUniqueViolation(err) {
		// a concurrent first write inserted the row, the retry updates it
		err = repo.saveProgress(ctx, p)
	}
	return err
}

func (repo *ProgressRepository) saveProgress(ctx context.Context, p *domain.ProgressModel) error {
	return withTx(ctx, repo.Conn, func(tx driver.ITransactionalDB) error {
		existing, err := findProgress(ctx, tx, p.UserID, p.LessonID)
		if err != nil {
			return err
		}

		if existing == nil {
			id, err := repo.UUIDGenerator.Generate()
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO user_progress(id, user_id, lesson_id, completed, progress_percent, completed_at, updated_at)
			VALUES($1, $2, $3, $4, $5, $6, $7)`, id, p.UserID, p.LessonID, p.Completed, p.ProgressPercent,
				nullableTime(p.CompletedAt), p.UpdatedAt.UTC())
			if err != nil {
				return err
			}
		} else {
			_, err = tx.ExecContext(ctx, `UPDATE user_progress
			SET completed = (completed OR $1),
				progress_percent = $2,
				completed_at = COALESCE(completed_at, $3),
				updated_at = $4
			WHERE id = $5`, p.Completed, p.ProgressPercent, nullableTime(p.CompletedAt), p.UpdatedAt.UTC(), existing.ID)
			if err != nil {
				return err
			}
		}

		stored, err := findProgress(ctx, tx, p.UserID, p.LessonID)
		if err != nil {
			return err
		}
		if stored == nil {
			return errors.New("progress record vanished after upsert")
		}
		*p = *stored
		return nil
	})
}
