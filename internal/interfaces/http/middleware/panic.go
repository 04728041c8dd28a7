package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/coursehub/internal/interfaces/rest"
	"go.uber.org/zap"
)

// PanicHandlingOption options for error handling
type PanicHandlingOption struct {
	Handler func(c echo.Context, err error)
	Logger  *zap.Logger
}

// PanicHandling handle panic returned from controller
func PanicHandling(options ...*PanicHandlingOption) echo.MiddlewareFunc {
	custom := &PanicHandlingOption{
		Handler: func(c echo.Context, err error) {
			traceID := c.Response().Header().Get(echo.HeaderXRequestID)
			c.JSON(http.StatusInternalServerError,
				rest.NewRESTStandardError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetTraceID(traceID),
			)
		},
	}
	if len(options) > 0 {
		option := options[0]
		handler := option.Handler
		if handler != nil {
			custom.Handler = handler
		}
		if option.Logger != nil {
			custom.Logger = option.Logger
		}
	}
	handler := custom.Handler
	logger := custom.Logger
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (ret error) {
			defer func() {
				if any := recover(); any != nil {
					err, ok := any.(error)
					if !ok {
						err = fmt.Errorf("%v", any)
					}
					if logger != nil {
						logger.Error(err.Error(),
							zap.String("trace.id", c.Response().Header().Get(echo.HeaderXRequestID)),
							zap.String("url.path", c.Request().RequestURI),
							zap.String("http.request.method", c.Request().Method),
							zap.String("http.request.body.content", c.Request().Header.Get(echo.HeaderContentType)),
							zap.Int64("http.request.body.bytes", c.Request().ContentLength),
							zap.Strings("route.params.name", c.ParamNames()),
							zap.Strings("route.params.value", c.ParamValues()),
							zap.Int("http.response.status_code", http.StatusInternalServerError),
						)
					}
					if !c.Response().Committed {
						handler(c, err)
					}
					ret = nil
				}
			}()
			return next(c)
		}
	}
}
