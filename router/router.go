package router

import (
	"github.com/labstack/echo/v4"

	"vita/pkg/middleware"
)

func New(
	e *echo.Echo,
	userCtrl interface {
		Get(echo.Context) error
		Update(echo.Context) error
	},
	planGenerate func(echo.Context) error,
	planHistory func(echo.Context) error,
	checkInCtrl interface{ Submit(echo.Context) error },
	analyticsCtrl interface {
		Summary(echo.Context) error
		Export(echo.Context) error
	},
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	kbCtrl interface {
		IngestText(echo.Context) error
		IngestURL(echo.Context) error
		Search(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.DevLogin())
	api := e.Group("")

	e.GET("/health", healthCtrl.Health)
	api.GET("/whoami", authCtrl.WhoAmI)
	api.GET("/devlogin", authCtrl.DevLogin)

	api.GET("/profile", userCtrl.Get)
	api.PUT("/profile", userCtrl.Update)

	api.POST("/plan/generate", planGenerate)
	api.GET("/plan/history", planHistory)

	api.POST("/checkins", checkInCtrl.Submit)

	api.GET("/analytics/summary", analyticsCtrl.Summary)
	api.GET("/analytics/export", analyticsCtrl.Export)

	api.POST("/kb/ingest", kbCtrl.IngestText)
	api.POST("/kb/ingest/url", kbCtrl.IngestURL)
	api.GET("/kb/search", kbCtrl.Search)

	return e
}
