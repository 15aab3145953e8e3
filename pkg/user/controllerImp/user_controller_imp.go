package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vita/entities"
	plansvc "vita/pkg/plan/service"
	repo "vita/pkg/user/repository"
)

type UserCtrl struct {
	users repo.UserRepository
	plans plansvc.PlanService
}

func New(users repo.UserRepository, plans plansvc.PlanService) *UserCtrl {
	return &UserCtrl{users: users, plans: plans}
}

type profileUpdateReq struct {
	FirstName     *string                `json:"firstName"`
	LastName      *string                `json:"lastName"`
	Height        *float64               `json:"height"`
	Weight        *float64               `json:"weight"`
	Goals         *[]string              `json:"goals"`
	DietaryNeeds  *[]string              `json:"dietaryNeeds"`
	Equipment     *string                `json:"equipment"`
	CycleTracking *bool                  `json:"cycleTracking"`
	CycleDetails  *entities.CycleDetails `json:"cycleDetails"`
}

func (h *UserCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	user, err := h.users.FindOrCreate(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load profile"})
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

func (h *UserCtrl) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if errs := validateProfileUpdate(req); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid profile data", "errors": errs})
	}

	user, err := h.users.FindOrCreate(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load profile"})
	}

	planRelevant := applyProfileUpdate(user, req)
	if err := h.users.Update(user); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update profile"})
	}

	// a plan-relevant change refreshes the plan; a user without a plan yet
	// keeps waiting for the first generate call
	if planRelevant && user.CurrentPlanVersionID != nil {
		if _, err := h.plans.RegenerateAfterProfileUpdate(user); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to refresh plan"})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

func validateProfileUpdate(req profileUpdateReq) []string {
	var errs []string
	if req.Height != nil && *req.Height <= 0 {
		errs = append(errs, "height must be positive")
	}
	if req.Weight != nil && *req.Weight <= 0 {
		errs = append(errs, "weight must be positive")
	}
	if req.Equipment != nil {
		switch *req.Equipment {
		case "Gym", "Home", "None":
		default:
			errs = append(errs, "equipment must be Gym, Home, or None")
		}
	}
	if req.CycleDetails != nil && req.CycleDetails.AvgCycleLength != nil && *req.CycleDetails.AvgCycleLength <= 0 {
		errs = append(errs, "avgCycleLength must be positive")
	}
	return errs
}

// applyProfileUpdate copies present fields onto the user and reports whether
// any plan-relevant field changed.
func applyProfileUpdate(user *entities.User, req profileUpdateReq) bool {
	relevant := false

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Height != nil {
		user.Height = req.Height
		relevant = true
	}
	if req.Weight != nil {
		user.Weight = req.Weight
		relevant = true
	}
	if req.Goals != nil {
		user.Goals = *req.Goals
		relevant = true
	}
	if req.DietaryNeeds != nil {
		user.DietaryNeeds = *req.DietaryNeeds
		relevant = true
	}
	if req.Equipment != nil {
		user.Equipment = *req.Equipment
		relevant = true
	}
	if req.CycleTracking != nil {
		user.CycleTracking = *req.CycleTracking
		relevant = true
	}
	if req.CycleDetails != nil {
		user.CycleDetails = req.CycleDetails
		relevant = true
	}
	return relevant
}
