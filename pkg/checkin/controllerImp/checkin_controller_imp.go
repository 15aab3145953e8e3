package controllerImp

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vita/entities"
	"vita/pkg/checkin"
	repo "vita/pkg/checkin/repository"
	plansvc "vita/pkg/plan/service"
	"vita/pkg/plan/serviceImp"
	userrepo "vita/pkg/user/repository"
)

type CheckInCtrl struct {
	repo  repo.CheckInRepository
	plans plansvc.PlanService
	users userrepo.UserRepository
}

func New(repo repo.CheckInRepository, plans plansvc.PlanService, users userrepo.UserRepository) *CheckInCtrl {
	return &CheckInCtrl{repo: repo, plans: plans, users: users}
}

type checkInReq struct {
	CheckIn *checkin.Input `json:"checkIn"`
	checkin.Input
}

func (h *CheckInCtrl) Submit(c echo.Context) error {
	uid := c.Get("uid").(string)

	// payload may arrive bare or wrapped under a checkIn key
	var req checkInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	payload := req.Input
	if req.CheckIn != nil {
		payload = *req.CheckIn
	}

	snapshot, errs := checkin.Sanitize(payload)
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid check-in", "errors": errs})
	}

	user, err := h.users.FindOrCreate(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	record := &entities.CheckIn{
		UserID:   uid,
		Energy:   snapshot.Energy,
		Mood:     snapshot.Mood,
		Symptoms: snapshot.Symptoms,
		Date:     time.Now(),
	}
	if err := h.repo.Create(record); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	pv, plan, err := h.plans.Generate(user, &snapshot)
	if err != nil {
		if errors.Is(err, serviceImp.ErrExhaustedRetries) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to submit check-in"})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"plan": plan,
		"checkIn": map[string]any{
			"id":        record.CheckInID,
			"createdAt": record.CreatedAt,
		},
		"planVersion": map[string]any{
			"id":        pv.ID,
			"version":   pv.Version,
			"source":    pv.Source,
			"createdAt": pv.CreatedAt,
		},
	})
}
