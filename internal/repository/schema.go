package repository

import (
	"context"
	"fmt"

	"github.com/pot-code/coursehub/internal/infrastructure/driver"
)

// statements are kept to the subset understood by mysql, postgres and sqlite
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		full_name VARCHAR(100) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		login_retry INTEGER NOT NULL DEFAULT 0,
		last_login BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS lessons (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		order_number INTEGER NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT NULL,
		video_url VARCHAR(1024) NULL,
		duration_minutes INTEGER NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lesson_files (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		lesson_id VARCHAR(64) NOT NULL REFERENCES lessons(id),
		file_name VARCHAR(255) NOT NULL,
		file_url VARCHAR(1024) NOT NULL,
		file_type VARCHAR(64) NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quizzes (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		lesson_id VARCHAR(64) NOT NULL UNIQUE REFERENCES lessons(id),
		title VARCHAR(255) NOT NULL,
		questions TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL REFERENCES users(id),
		lesson_id VARCHAR(64) NOT NULL REFERENCES lessons(id),
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		progress_percent INTEGER NOT NULL DEFAULT 0,
		completed_at TIMESTAMP NULL DEFAULT NULL,
		updated_at TIMESTAMP NULL DEFAULT NULL,
		UNIQUE (user_id, lesson_id)
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL REFERENCES users(id),
		quiz_id VARCHAR(64) NOT NULL REFERENCES quizzes(id),
		score INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		answers TEXT NOT NULL,
		updated_at TIMESTAMP NULL DEFAULT NULL,
		UNIQUE (user_id, quiz_id)
	)`,
}

// InitSchema creates missing tables
func InitSchema(ctx context.Context, conn driver.ITransactionalDB) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}
