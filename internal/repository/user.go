package repository

import (
	"context"

	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/driver"
	"github.com/pot-code/coursehub/internal/infrastructure/uuid"
)

type UserRepository struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ domain.UserRepository = &UserRepository{}

func NewUserRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *UserRepository {
	return &UserRepository{
		Conn:          Conn,
		UUIDGenerator: UUIDGenerator,
	}
}

// FindByEmail returns nil if no user is registered with email
func (repo *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.UserModel, error) {
	return repo.findOne(ctx, `SELECT id, email, password, full_name, phone, login_retry, last_login
	FROM users WHERE email = $1`, email)
}

func (repo *UserRepository) FindByID(ctx context.Context, id string) (*domain.UserModel, error) {
	return repo.findOne(ctx, `SELECT id, email, password, full_name, phone, login_retry, last_login
	FROM users WHERE id = $1`, id)
}

func (repo *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.UserModel, error) {
	rows, err := repo.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		user := new(domain.UserModel)
		if err := rows.Scan(&user.ID, &user.Email, &user.Password, &user.FullName, &user.Phone,
			&user.LoginRetry, &user.LastLogin); err != nil {
			return nil, err
		}
		return user, nil
	}
	return nil, rows.Err()
}

// SaveUser insert user with a generated id
func (repo *UserRepository) SaveUser(ctx context.Context, user *domain.UserModel) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO users(id, email, password, full_name, phone, login_retry, last_login)
	VALUES($1, $2, $3, $4, $5, $6, $7)`, id, user.Email, user.Password, user.FullName, user.Phone,
		user.LoginRetry, user.LastLogin)
	if driver.IsUniqueViolation(err) {
		return domain.ErrDuplicatedUser
	}
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (repo *UserRepository) UpdateLoginState(ctx context.Context, user *domain.UserModel) error {
	_, err := repo.Conn.ExecContext(ctx, `UPDATE users
	SET login_retry = $1,
		last_login = $2
	WHERE id = $3`, user.LoginRetry, user.LastLogin, user.ID)
	return err
}
