package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/coursehub/internal/interfaces/rest"
)

// NoRouteMatched no matched route handler, replies 404 with a link back to home
func NoRouteMatched(home string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if v, ok := err.(*echo.HTTPError); ok && v.Code == http.StatusNotFound {
				traceID := c.Response().Header().Get(echo.HeaderXRequestID)
				return c.JSON(v.Code,
					rest.NewRESTStandardError(v.Code, "No route matched "+c.Request().URL.Path).
						SetTraceID(traceID).
						WithLink("dashboard", home),
				)
			}
			return err
		}
	}
}
