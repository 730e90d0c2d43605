package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	authCtrl "dispatch/pkg/auth/controller"
	exportCtrl "dispatch/pkg/export/controller"
	healthCtrl "dispatch/pkg/health/controller"
	"dispatch/pkg/middleware"
	notifCtrl "dispatch/pkg/notification/controller"
	taskCtrl "dispatch/pkg/task/controller"
	userCtrl "dispatch/pkg/user/controller"
	wrCtrl "dispatch/pkg/workrequest/controller"
)

func New(
	e *echo.Echo,
	log *zap.Logger,
	gate *middleware.Gate,
	auth authCtrl.AuthController,
	tasks taskCtrl.TaskController,
	exports exportCtrl.ExportController,
	users userCtrl.UserController,
	workRequests wrCtrl.WorkRequestController,
	notifications notifCtrl.NotificationController,
	health healthCtrl.HealthController,
) *echo.Echo {
	e.HideBanner = true
	e.Validator = middleware.NewValidator()
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.AccessLog(log))

	e.GET("/health", health.Health)

	api := e.Group("/api", gate.Attach())
	api.POST("/auth/login", auth.Login)

	authed := api.Group("", middleware.RequireAuth())
	authed.GET("/auth/whoami", auth.WhoAmI)

	authed.GET("/tasks", tasks.List)
	authed.POST("/tasks", tasks.Create)
	authed.GET("/tasks/stats", tasks.Stats)
	authed.GET("/tasks/export.xlsx", exports.Spreadsheet)
	authed.GET("/tasks/calendar.ics", exports.Calendar)
	authed.PUT("/tasks/:id", tasks.Update)
	authed.DELETE("/tasks/:id", tasks.Delete)

	authed.GET("/users/profile", users.Profile)

	authed.POST("/work-requests", workRequests.Create)
	authed.GET("/work-requests", workRequests.Get)
	authed.POST("/work-requests/generate-pdf", workRequests.GeneratePDF)

	authed.GET("/notifications", notifications.List)
	authed.GET("/notifications/count", notifications.Count)
	authed.GET("/notifications/stats", notifications.Stats)

	admin := api.Group("/users", middleware.RequireAdmin())
	admin.GET("", users.List)
	admin.POST("", users.Create)
	admin.PUT("", users.Update)
	admin.DELETE("", users.Delete)

	return e
}
