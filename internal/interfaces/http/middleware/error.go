package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/coursehub/internal/interfaces/rest"
)

// ErrorHandlingOption options for error handling
type ErrorHandlingOption struct {
	Handler func(c echo.Context, traceID string, err error)
}

// ErrorHandling render errors returned from controller
// **DO NOT return error anymore**
func ErrorHandling(options ...*ErrorHandlingOption) echo.MiddlewareFunc {
	custom := &ErrorHandlingOption{
		Handler: func(c echo.Context, traceID string, err error) {
			c.JSON(http.StatusInternalServerError,
				rest.NewRESTStandardError(http.StatusInternalServerError, err.Error()).SetTraceID(traceID),
			)
		},
	}
	if len(options) > 0 {
		option := options[0]
		if option.Handler != nil {
			custom.Handler = option.Handler
		}
	}
	handler := custom.Handler
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil || c.Response().Committed {
				return nil
			}
			traceID := c.Response().Header().Get(echo.HeaderXRequestID)
			if v, ok := err.(*echo.HTTPError); ok {
				c.JSON(v.Code, rest.NewRESTStandardError(v.Code, fmt.Sprint(v.Message)).SetTraceID(traceID))
				return nil
			}
			handler(c, traceID, err)
			return nil
		}
	}
}
