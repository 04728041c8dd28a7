package domain

import (
	"context"
	"time"
)

type UserModel struct {
	ID         string `json:"-"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required,min=6,max=100"`
	FullName   string `json:"full_name" validate:"required,min=2,max=100"`
	Phone      string `json:"phone" validate:"required,mobile"`
	LoginRetry int    `json:"-"`
	LastLogin  int64  `json:"-"`
}

// ProfileModel public part of a user
type ProfileModel struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Profile strips credentials from the user
func (um *UserModel) Profile() *ProfileModel {
	return &ProfileModel{
		ID:       um.ID,
		Email:    um.Email,
		FullName: um.FullName,
		Phone:    um.Phone,
	}
}

// Session identity of the signed in learner, derived from a validated token
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserUseCase interface {
	SignUp(ctx context.Context, post *UserModel) (*UserModel, error)
	SignIn(ctx context.Context, email, password string) (*UserModel, error)
	Exists(ctx context.Context, email string) (bool, error)
	Profile(ctx context.Context, session *Session) (*ProfileModel, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*UserModel, error)
	FindByID(ctx context.Context, id string) (*UserModel, error)
	UpdateLoginState(ctx context.Context, user *UserModel) error
	SaveUser(ctx context.Context, user *UserModel) error
}
