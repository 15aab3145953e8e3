package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"vita/config"
	"vita/database"
	"vita/router"

	// Auth + Health
	authCtrlImp "vita/pkg/auth/controllerImp"
	healthCtrlImp "vita/pkg/health/controllerImp"

	// User
	userCtrlImp "vita/pkg/user/controllerImp"
	userRepoImp "vita/pkg/user/repositoryImp"

	// Plan
	planCtrlImp "vita/pkg/plan/controllerImp"
	planRepoImp "vita/pkg/plan/repositoryImp"
	planSvc "vita/pkg/plan/serviceImp"

	// Check-in
	checkinCtrlImp "vita/pkg/checkin/controllerImp"
	checkinRepoImp "vita/pkg/checkin/repositoryImp"

	// Analytics
	analyticsCtrlImp "vita/pkg/analytics/controllerImp"
	analyticsSvc "vita/pkg/analytics/serviceImp"

	// KB
	kbCtrlImp "vita/pkg/kb/controllerImp"
	kbRepoImp "vita/pkg/kb/repositoryImp"
	kbServiceImp "vita/pkg/kb/serviceImp"

	// LLM
	"vita/pkg/ai"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// 4) LLM (mock fallback)
	var llm ai.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		log.Printf("[cfg] no LLM endpoint configured, using mock generator")
		llm = ai.NewMock()
	}

	// 5) KB wiring
	kbRepo := kbRepoImp.New(db)
	kbSvc := kbServiceImp.New(kbRepo)
	kbCtrl := kbCtrlImp.New(kbSvc, cfg.KBAllowedDomains)

	// 6) Repos/Services/Controllers
	uRepo := userRepoImp.New(db)
	pvRepo := planRepoImp.New(db)
	ciRepo := checkinRepoImp.New(db)

	assigner := planSvc.NewVersionAssigner(pvRepo, uRepo)
	pSvc := planSvc.NewPlanService(llm, pvRepo, assigner, kbSvc)
	plCtrl := planCtrlImp.NewPlanCtrl(pSvc, uRepo)

	uCtrl := userCtrlImp.New(uRepo, pSvc)
	ciCtrl := checkinCtrlImp.New(ciRepo, pSvc, uRepo)

	aSvc := analyticsSvc.New(ciRepo, pvRepo)
	aCtrl := analyticsCtrlImp.New(aSvc)

	authCtrl := authCtrlImp.NewAuthController()
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 7) Router
	r := router.New(
		e,
		uCtrl,
		plCtrl.Generate,
		plCtrl.History,
		ciCtrl,
		aCtrl,
		authCtrl,
		kbCtrl,
		hCtrl,
	)

	// 8) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
