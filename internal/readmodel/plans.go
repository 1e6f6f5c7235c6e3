package readmodel

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/db"
	"github.com/oggyb/mealplanner/internal/engagement"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/filter"
	"github.com/oggyb/mealplanner/internal/repository"
	"github.com/oggyb/mealplanner/internal/utils/pagination"
)

// ParamMine restricts a plan list to the caller's own plans.
const ParamMine = "mine"

type Targets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type PlanView struct {
	ID           uint64    `json:"id"`
	OwnerID      uint64    `json:"owner_id"`
	SourcePlanID *uint64   `json:"source_plan_id,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Targets      Targets   `json:"targets"`
	DurationDays int       `json:"duration_days"`
	IsPublic     bool      `json:"is_public"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	engagement.Stats
}

type PlanMealView struct {
	ID        uint64      `json:"id"`
	MealType  db.MealType `json:"meal_type"`
	MealOrder int         `json:"meal_order"`
	RecipeID  *uint64     `json:"recipe_id,omitempty"`
	Name      string      `json:"name"`
	Calories  *float64    `json:"calories,omitempty"`
	Protein   *float64    `json:"protein,omitempty"`
	Carbs     *float64    `json:"carbs,omitempty"`
	Fat       *float64    `json:"fat,omitempty"`
}

type PlanDayView struct {
	DayNumber int            `json:"day_number"`
	Meals     []PlanMealView `json:"meals"`
}

type PlanDetail struct {
	PlanView
	Days []PlanDayView `json:"days"`
}

// Plans builds meal-plan lists and details.
type Plans struct {
	plans      *repository.MealPlanRepository
	engagement *engagement.Service
	limits     filter.Limits
	log        *slog.Logger
}

func NewPlans(appCtx *app.AppContext) *Plans {
	return &Plans{
		plans:      repository.NewMealPlanRepository(appCtx.DB),
		engagement: engagement.NewService(appCtx.DB, appCtx.Logger),
		limits:     appCtx.Limits,
		log:        appCtx.Logger,
	}
}

// List returns public plans, or with mine=true the caller's own plans.
func (p *Plans) List(ctx context.Context, callerID uint64, params filter.Params) (pagination.Page[PlanView], error) {
	pg := filter.CompilePaging(params, p.limits)
	mine := callerID != 0 && strings.EqualFold(strings.TrimSpace(params[ParamMine]), "true")

	rows, total, err := p.plans.List(ctx, callerID, mine, pg.Offset(), pg.Limit, pg.Sort == filter.Asc)
	if err != nil {
		return pagination.Page[PlanView]{}, err
	}

	ids := make([]uint64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	stats, err := p.engagement.Join(ctx, engagement.MealPlan, ids, callerID)
	if err != nil {
		return pagination.Page[PlanView]{}, err
	}

	views := make([]PlanView, len(rows))
	for i, r := range rows {
		views[i] = planView(r, stats[r.ID])
	}
	return pagination.New(views, total, pg.Page, pg.Limit), nil
}

// Detail returns a plan with its ordered days and meals. Private plans of
// other users are NotFound.
func (p *Plans) Detail(ctx context.Context, callerID, planID uint64) (PlanDetail, error) {
	plan, err := p.plans.LoadVisible(ctx, callerID, planID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PlanDetail{}, svcErr.NotFound("meal plan %d not found", planID)
	} else if err != nil {
		return PlanDetail{}, err
	}

	stats, err := p.engagement.Join(ctx, engagement.MealPlan, []uint64{plan.ID}, callerID)
	if err != nil {
		return PlanDetail{}, err
	}

	d := PlanDetail{PlanView: planView(*plan, stats[plan.ID]), Days: make([]PlanDayView, 0, len(plan.Days))}
	for _, day := range plan.Days {
		dv := PlanDayView{DayNumber: day.DayNumber, Meals: make([]PlanMealView, 0, len(day.Meals))}
		for _, m := range day.Meals {
			dv.Meals = append(dv.Meals, PlanMealView{
				ID:        m.ID,
				MealType:  m.MealType,
				MealOrder: m.MealOrder,
				RecipeID:  m.RecipeID,
				Name:      m.Name,
				Calories:  m.Calories,
				Protein:   m.Protein,
				Carbs:     m.Carbs,
				Fat:       m.Fat,
			})
		}
		d.Days = append(d.Days, dv)
	}
	return d, nil
}

func planView(p db.MealPlan, stats engagement.Stats) PlanView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PlanView{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		SourcePlanID: p.SourcePlanID,
		Title:        p.Title,
		Description:  p.Description,
		Targets: Targets{
			Calories: p.TargetCalories,
			Protein:  p.TargetProtein,
			Carbs:    p.TargetCarbs,
			Fat:      p.TargetFat,
		},
		DurationDays: p.DurationDays,
		IsPublic:     p.IsPublic,
		Tags:         tags,
		CreatedAt:    p.CreatedAt,
		Stats:        stats,
	}
}
