package mealplan

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/db"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/progress"
	"github.com/oggyb/mealplanner/internal/repository"
	"github.com/oggyb/mealplanner/internal/validation"
)

// ApplyRequest asks for plan PlanID to be scheduled for UserID from StartDate.
type ApplyRequest struct {
	PlanID    uint64 `validate:"required"`
	UserID    uint64 `validate:"required"`
	Title     string `validate:"max=255"`
	StartDate string `validate:"required,date"`
	Mode      string
}

// Service applies and clones meal plans.
type Service struct {
	plans     *repository.MealPlanRepository
	recipes   *repository.RecipeRepository
	schedules *repository.ScheduleRepository
	log       *slog.Logger
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		plans:     repository.NewMealPlanRepository(appCtx.DB),
		recipes:   repository.NewRecipeRepository(appCtx.DB),
		schedules: repository.NewScheduleRepository(appCtx.DB),
		log:       appCtx.Logger,
	}
}

// Apply materializes a visible plan into a new active schedule.
//
// Behavior:
//   - The template must be public or owned by the caller, else NotFound.
//   - Every meal item is written in the same transaction as the schedule.
//   - In replace mode the caller's active schedules are completed in that
//     transaction; their items are left as they are.
//   - Start dates in the past are accepted.
//
// Example:
//
//	svc.Apply(ctx, mealplan.ApplyRequest{PlanID: 3, UserID: 7, StartDate: "2024-06-01", Mode: "replace"})
func (s *Service) Apply(ctx context.Context, req ApplyRequest) (progress.ScheduleView, error) {
	if err := validation.Struct(req); err != nil {
		return progress.ScheduleView{}, err
	}
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return progress.ScheduleView{}, err
	}
	start, err := time.Parse(validation.DateLayout, req.StartDate)
	if err != nil {
		return progress.ScheduleView{}, svcErr.InvalidArgument("start_date must be a date formatted YYYY-MM-DD")
	}

	plan, err := s.loadPlan(ctx, req.UserID, req.PlanID)
	if err != nil {
		return progress.ScheduleView{}, err
	}
	if err := ValidateTemplate(plan); err != nil {
		return progress.ScheduleView{}, err
	}

	recipes, err := s.recipes.Nutrition(ctx, RecipeIDs(plan))
	if err != nil {
		return progress.ScheduleView{}, err
	}
	items := Materialize(plan, recipes, start)

	title := req.Title
	if title == "" {
		title = plan.Title
	}
	sched := &db.Schedule{
		OwnerID:        req.UserID,
		MealPlanID:     plan.ID,
		Title:          title,
		StartDate:      req.StartDate,
		Status:         db.ScheduleActive,
		TargetCalories: plan.TargetCalories,
		TargetProtein:  plan.TargetProtein,
		TargetCarbs:    plan.TargetCarbs,
		TargetFat:      plan.TargetFat,
	}
	replaced, err := s.schedules.CreateMaterialized(ctx, sched, items, mode == ModeReplace)
	if err != nil {
		s.log.Error("apply meal plan failed", "plan_id", plan.ID, "user_id", req.UserID, "err", err)
		return progress.ScheduleView{}, err
	}

	s.log.Info("meal plan applied",
		"plan_id", plan.ID,
		"schedule_id", sched.ID,
		"user_id", req.UserID,
		"mode", mode,
		"items", len(items),
		"replaced", replaced,
	)
	return progress.NewScheduleView(*sched), nil
}

// Clone copies a visible plan with all of its days and meals into a new
// private plan owned by userID. The source plan is not modified and no
// schedule is created.
func (s *Service) Clone(ctx context.Context, userID, planID uint64) (*db.MealPlan, error) {
	if userID == 0 {
		return nil, svcErr.InvalidArgument("caller identity is required to save a meal plan")
	}
	src, err := s.loadPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	sourceID := src.ID
	cp := &db.MealPlan{
		OwnerID:        userID,
		SourcePlanID:   &sourceID,
		Title:          src.Title,
		Description:    src.Description,
		TargetCalories: src.TargetCalories,
		TargetProtein:  src.TargetProtein,
		TargetCarbs:    src.TargetCarbs,
		TargetFat:      src.TargetFat,
		DurationDays:   src.DurationDays,
		IsPublic:       false,
		Tags:           append([]string(nil), src.Tags...),
		Days:           make([]db.MealPlanDay, 0, len(src.Days)),
	}
	for _, day := range src.Days {
		d := db.MealPlanDay{DayNumber: day.DayNumber, Meals: make([]db.MealPlanMeal, 0, len(day.Meals))}
		for _, m := range day.Meals {
			d.Meals = append(d.Meals, db.MealPlanMeal{
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
		cp.Days = append(cp.Days, d)
	}

	if err := s.plans.Create(ctx, cp); err != nil {
		return nil, err
	}
	s.log.Info("meal plan cloned", "source_plan_id", src.ID, "plan_id", cp.ID, "user_id", userID)
	return cp, nil
}

func (s *Service) loadPlan(ctx context.Context, viewerID, planID uint64) (*db.MealPlan, error) {
	plan, err := s.plans.LoadVisible(ctx, viewerID, planID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.NotFound("meal plan %d not found", planID)
	} else if err != nil {
		return nil, err
	}
	return plan, nil
}
