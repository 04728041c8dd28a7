package repository

import (
	"context"
	"database/sql"

	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/driver"
)

type LessonRepository struct {
	Conn driver.ITransactionalDB
}

var _ domain.LessonRepository = &LessonRepository{}

func NewLessonRepository(Conn driver.ITransactionalDB) *LessonRepository {
	return &LessonRepository{
		Conn: Conn,
	}
}

const lessonColumns = `id, order_number, title, description, video_url, duration_minutes`

func (repo *LessonRepository) ListLessons(ctx context.Context) ([]*domain.LessonModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT `+lessonColumns+`
	FROM lessons ORDER BY order_number ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.LessonModel
	for rows.Next() {
		item, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// FindLesson returns nil if the lesson does not exist
func (repo *LessonRepository) FindLesson(ctx context.Context, id string) (*domain.LessonModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT `+lessonColumns+`
	FROM lessons WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		return scanLesson(rows)
	}
	return nil, rows.Err()
}

func scanLesson(rows driver.ISQLRows) (*domain.LessonModel, error) {
	var (
		item        = new(domain.LessonModel)
		description sql.NullString
		videoURL    sql.NullString
		duration    sql.NullInt64
	)
	if err := rows.Scan(&item.ID, &item.OrderNumber, &item.Title, &description, &videoURL, &duration); err != nil {
		return nil, err
	}
	item.Description = stringPtr(description)
	item.VideoURL = stringPtr(videoURL)
	item.DurationMinutes = intPtr(duration)
	return item, nil
}

func (repo *LessonRepository) ListFiles(ctx context.Context, lessonID string) ([]*domain.LessonFileModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT id, lesson_id, file_name, file_url, file_type
	FROM lesson_files WHERE lesson_id = $1 ORDER BY file_name ASC, id ASC`, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.LessonFileModel
	for rows.Next() {
		var (
			item     = new(domain.LessonFileModel)
			fileType sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.LessonID, &item.FileName, &item.FileURL, &fileType); err != nil {
			return nil, err
		}
		item.FileType = stringPtr(fileType)
		result = append(result, item)
	}
	return result, rows.Err()
}
