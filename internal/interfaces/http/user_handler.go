package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/coursehub/internal/domain"
	"github.com/pot-code/coursehub/internal/infrastructure/auth"
	"github.com/pot-code/coursehub/internal/infrastructure/driver"
	"github.com/pot-code/coursehub/internal/infrastructure/validate"
)

// UserHandler user related operations
type UserHandler struct {
	JWTUtil     *auth.JWTUtil
	KVStore     driver.KeyValueDB
	UserUseCase domain.UserUseCase
	Validator   validate.Validator
}

// NewUserHandler create an user controller instance
func NewUserHandler(
	JWTUtil *auth.JWTUtil,
	KVStore driver.KeyValueDB,
	UserUseCase domain.UserUseCase,
	Validator validate.Validator,
) *UserHandler {
	handler := &UserHandler{
		JWTUtil:     JWTUtil,
		KVStore:     KVStore,
		UserUseCase: UserUseCase,
		Validator:   Validator,
	}
	return handler
}

type signInPost struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type sessionResponse struct {
	Session *domain.Session      `json:"session"`
	Profile *domain.ProfileModel `json:"profile"`
}

func (uh *UserHandler) validator(c echo.Context) validate.Validator {
	return uh.Validator.WithLocale(c.Request().Header.Get("Accept-Language"))
}

// issue sign user in by setting the session cookie
func (uh *UserHandler) issue(c echo.Context, user *domain.UserModel) error {
	tokenStr, err := uh.JWTUtil.GenerateTokenStr(user)
	if err != nil {
		return err
	}
	uh.JWTUtil.SetClientToken(c, tokenStr)
	return nil
}

// HandleSignIn ...
func (uh *UserHandler) HandleSignIn(c echo.Context) (err error) {
	post := new(signInPost)
	if err = c.Bind(post); err != nil {
		return bindError(c, "credential", err)
	}
	if fe := uh.validator(c).Struct(post); fe != nil {
		return validationError(c, "Failed to validate fields", fe)
	}

	user, err := uh.UserUseCase.SignIn(c.Request().Context(), post.Email, post.Password)
	if err != nil {
		return renderError(c, err)
	}
	if err = uh.issue(c, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Profile())
}

// HandleSignUp ...
func (uh *UserHandler) HandleSignUp(c echo.Context) (err error) {
	post := new(domain.UserModel)
	if err = c.Bind(post); err != nil {
		return bindError(c, "user entity", err)
	}
	if fe := uh.validator(c).Struct(post); fe != nil {
		return validationError(c, "Failed to validate fields", fe)
	}

	user, err := uh.UserUseCase.SignUp(c.Request().Context(), post)
	if err != nil {
		return renderError(c, err)
	}
	if err = uh.issue(c, user); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user.Profile())
}

// HandleSignOut blacklist the token for the rest of its lifetime
func (uh *UserHandler) HandleSignOut(c echo.Context) (err error) {
	ju := uh.JWTUtil
	kv := uh.KVStore

	tokenStr, err := ju.ExtractToken(c)
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	token, err := ju.Validate(tokenStr)
	if err != nil {
		ju.ClearClientToken(c)
		return standardError(c, http.StatusUnauthorized, "Session is invalid or expired")
	}
	if remaining := token.TimeRemaining(); remaining > 0 {
		if err = kv.SetEX(tokenStr, "", remaining); err != nil {
			return err
		}
	}
	ju.ClearClientToken(c)
	return c.NoContent(http.StatusNoContent)
}

// HandleUserExists ...
func (uh *UserHandler) HandleUserExists(c echo.Context) (err error) {
	email := c.QueryParam("email")
	if fe := uh.validator(c).Var("email", email, "required,email"); fe != nil {
		return validationError(c, "Failed to validate params", fe)
	}

	existing, err := uh.UserUseCase.Exists(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &existsResponse{existing})
}

// HandleSession current session and the profile behind it
func (uh *UserHandler) HandleSession(c echo.Context) (err error) {
	session := uh.JWTUtil.GetContextSession(c)
	profile, err := uh.UserUseCase.Profile(c.Request().Context(), session)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, &sessionResponse{session, profile})
}
