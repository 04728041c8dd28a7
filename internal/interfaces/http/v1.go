package http

import (
	"github.com/labstack/echo/v4"
)

func v1Endpoint(
	UserHandler *UserHandler,
	LessonHandler *LessonHandler,
	ProgressHandler *ProgressHandler,
	jwtMiddleware echo.MiddlewareFunc,
	refreshMiddleware echo.MiddlewareFunc,
) *endpoint {
	return &endpoint{
		apiVersion: "api/v1",
		groups: []*apiGroup{
			{
				prefix: "/user",
				routes: []*route{
					{"POST", "/sign-in", UserHandler.HandleSignIn, nil},
					{"PUT", "/sign-out", UserHandler.HandleSignOut, nil},
					{"POST", "/sign-up", UserHandler.HandleSignUp, nil},
					{"GET", "/exists", UserHandler.HandleUserExists, nil},
					{"GET", "/session", UserHandler.HandleSession, []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware}},
				},
			},
			{
				prefix:      "/lesson",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware},
				routes: []*route{
					{"GET", "/dashboard", LessonHandler.HandleDashboard, nil},
					{"GET", "/:id", LessonHandler.HandleLessonDetail, nil},
					{"POST", "/:id/quiz", ProgressHandler.HandleSubmitQuiz, nil},
					{"POST", "/:id/complete", ProgressHandler.HandleMarkComplete, nil},
					{"PUT", "/:id/progress", ProgressHandler.HandleReportProgress, nil},
					{"GET", "/:id/playback", ProgressHandler.HandlePlayback(), nil},
				},
			},
		},
	}
}
