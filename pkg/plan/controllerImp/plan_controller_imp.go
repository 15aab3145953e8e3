package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vita/pkg/plan/controller"
	"vita/pkg/plan/service"
	"vita/pkg/plan/serviceImp"
	"vita/pkg/plan/types"
	userrepo "vita/pkg/user/repository"
)

type PlanCtrl struct {
	svc   service.PlanService
	users userrepo.UserRepository
}

func NewPlanCtrl(svc service.PlanService, users userrepo.UserRepository) controller.PlanController {
	return &PlanCtrl{svc: svc, users: users}
}

func (h *PlanCtrl) Generate(c echo.Context) error {
	uid := c.Get("uid").(string)

	var body struct {
		CheckIn *types.CheckInSnapshot `json:"checkIn"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	user, err := h.users.FindOrCreate(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	pv, plan, err := h.svc.Generate(user, body.CheckIn)
	if err != nil {
		if errors.Is(err, serviceImp.ErrExhaustedRetries) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate plan"})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"plan": plan,
		"metadata": map[string]any{
			"planVersionId": pv.ID,
			"planVersion":   pv.Version,
			"source":        pv.Source,
			"generatedAt":   pv.CreatedAt,
		},
	})
}

func (h *PlanCtrl) History(c echo.Context) error {
	uid := c.Get("uid").(string)

	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	var beforeVersion *int
	if v := c.QueryParam("beforeVersion"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			beforeVersion = &n
		}
	}

	page, err := h.svc.History(uid, limit, beforeVersion)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load plan history"})
	}
	return c.JSON(http.StatusOK, page)
}
