package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	cultureController "agrotrack/pkg/culture/controller"
	fieldController "agrotrack/pkg/field/controller"
	"agrotrack/pkg/metrics"
	"agrotrack/pkg/middleware"
)

type Options struct {
	Logger         *zap.Logger
	MetricsEnabled bool
}

func New(
	e *echo.Echo,
	opts Options,
	fieldCtrl fieldController.FieldController,
	cultureCtrl cultureController.CultureController,
	harvestCtrl interface{ Register(*echo.Group) },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.HideBanner = true
	e.Validator = middleware.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger))
	if opts.MetricsEnabled {
		e.Use(metrics.Middleware())
		e.GET("/metrics", metrics.Handler())
	}
	// innermost, so a recovered panic still reaches the logger and metrics
	e.Use(echoMiddleware.Recover())

	e.GET("/health", healthCtrl.Health)

	api := e.Group("")

	api.POST("/fields", fieldCtrl.Create)
	api.GET("/fields", fieldCtrl.List)
	api.GET("/fields/:id", fieldCtrl.Get)
	api.PUT("/fields/:id", fieldCtrl.Update)
	api.DELETE("/fields/:id", fieldCtrl.Delete)
	api.POST("/fields/:id/cultures", cultureCtrl.CreateInField)

	api.GET("/cultures/statuses", cultureCtrl.Statuses)
	api.POST("/cultures", cultureCtrl.Create)
	api.GET("/cultures", cultureCtrl.List)
	api.GET("/cultures/:id", cultureCtrl.Get)
	api.PUT("/cultures/:id", cultureCtrl.Update)
	api.DELETE("/cultures/:id", cultureCtrl.Delete)
	api.PATCH("/cultures/:id/status", cultureCtrl.ChangeStatus)
	api.GET("/cultures/:id/progress", cultureCtrl.Progress)

	harvestCtrl.Register(api)
	return e
}
