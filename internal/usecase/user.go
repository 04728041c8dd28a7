package usecase

import (
	"context"
	"time"

	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/logging"
	"go.elastic.co/apm"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCaseImpl ...
type UserUseCaseImpl struct {
	UserRepository   domain.UserRepository
	MaxLoginAttempts int           // failed sign-ins before the account is held, 0 disables the limit
	RetryTimeout     time.Duration // hold duration counted from the last attempt
	HashCost         int
}

var _ domain.UserUseCase = &UserUseCaseImpl{}

// NewUserUseCase ...
func NewUserUseCase(
	UserRepository domain.UserRepository,
	MaxLoginAttempts int,
	RetryTimeout time.Duration,
) *UserUseCaseImpl {
	return &UserUseCaseImpl{
		UserRepository:   UserRepository,
		MaxLoginAttempts: MaxLoginAttempts,
		RetryTimeout:     RetryTimeout,
		HashCost:         bcrypt.DefaultCost,
	}
}

// SignUp create a user, post.Password is replaced by its hash
func (uu *UserUseCaseImpl) SignUp(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "UserUseCaseImpl.SignUp", "service")
	defer apmSpan.End()

	ur := uu.UserRepository
	// search for existence
	if m, err := ur.FindByEmail(ctx, post.Email); err != nil {
		return nil, err
	} else if m != nil {
		return nil, domain.ErrDuplicatedUser
	}

	// hash password
	password, err := bcrypt.GenerateFromPassword([]byte(post.Password), uu.HashCost)
	if err != nil {
		return nil, err
	}
	post.Password = string(password)
	post.LoginRetry = 0
	post.LastLogin = nowFunc().Unix()

	// save user
	if err := ur.SaveUser(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// SignIn validate the credential, failures count towards the login limit
func (uu *UserUseCaseImpl) SignIn(ctx context.Context, email, password string) (*domain.UserModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "UserUseCaseImpl.SignIn", "service")
	defer apmSpan.End()

	ur := uu.UserRepository
	user, err := ur.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNoSuchUser
	}

	now := nowFunc()
	if uu.MaxLoginAttempts > 0 && user.LoginRetry >= uu.MaxLoginAttempts {
		if now.Sub(time.Unix(user.LastLogin, 0)) < uu.RetryTimeout {
			return nil, domain.ErrUserTooManyRetry
		}
		user.LoginRetry = 0
	}

	logger := logging.ExtractLoggerFromContext(ctx)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if err != bcrypt.ErrMismatchedHashAndPassword {
			return nil, err
		}
		user.LoginRetry++
		user.LastLogin = now.Unix()
		if err := ur.UpdateLoginState(ctx, user); err != nil {
			logger.Error("Failed to record login attempt", zap.String("user.id", user.ID), zap.Error(err))
		}
		return nil, domain.ErrNoSuchUser
	}

	// reset retry number
	user.LoginRetry = 0
	user.LastLogin = now.Unix()
	if err := ur.UpdateLoginState(ctx, user); err != nil {
		logger.Error("Failed to reset login attempts", zap.String("user.id", user.ID), zap.Error(err))
	}
	return user, nil
}

// Exists find if email is registered
func (uu *UserUseCaseImpl) Exists(ctx context.Context, email string) (bool, error) {
	apmSpan, _ := apm.StartSpan(ctx, "UserUseCaseImpl.Exists", "service")
	defer apmSpan.End()

	user, err := uu.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// Profile of the session owner
func (uu *UserUseCaseImpl) Profile(ctx context.Context, session *domain.Session) (*domain.ProfileModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "UserUseCaseImpl.Profile", "service")
	defer apmSpan.End()

	user, err := uu.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNoSuchUser
	}
	return user.Profile(), nil
}
