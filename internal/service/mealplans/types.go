package mealplans

import (
	"github.com/oggyb/mealplanner/internal/engagement"
	"github.com/oggyb/mealplanner/internal/filter"
	"github.com/oggyb/mealplanner/internal/progress"
	"github.com/oggyb/mealplanner/internal/readmodel"
	"github.com/oggyb/mealplanner/internal/utils/pagination"
)

// ListMealPlansRequest carries page/limit/sort and the optional mine flag.
type ListMealPlansRequest struct {
	Params filter.Params `json:"params"`
}

type ListMealPlansResponse = pagination.Page[readmodel.PlanView]

type MealPlanRequest struct {
	MealPlanID uint64 `json:"meal_plan_id"`
}

type MealPlanResponse = readmodel.PlanDetail

type EngagementResponse struct {
	MealPlanID uint64 `json:"meal_plan_id"`
	engagement.Stats
}

// ApplyMealPlanRequest is the apply request; mode is "schedule" (default)
// or "replace".
type ApplyMealPlanRequest struct {
	MealPlanID uint64 `json:"meal_plan_id"`
	Title      string `json:"title"`
	StartDate  string `json:"start_date"`
	Mode       string `json:"mode,omitempty"`
}

type ApplyMealPlanResponse = progress.ScheduleView
