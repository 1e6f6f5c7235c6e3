package mealplans

import (
	"context"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/engagement"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/mealplan"
	"github.com/oggyb/mealplanner/internal/readmodel"
	"github.com/oggyb/mealplanner/internal/repository"
	"github.com/oggyb/mealplanner/internal/server"
)

// Service implements the MealPlanService gRPC API.
type Service struct {
	appCtx     *app.AppContext
	plans      *readmodel.Plans
	mealplans  *mealplan.Service
	engagement *engagement.Service
}

// NewMealPlanService creates a new MealPlan service with dependencies from AppContext.
func NewMealPlanService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:     appCtx,
		plans:      readmodel.NewPlans(appCtx),
		mealplans:  mealplan.NewService(appCtx),
		engagement: engagement.NewService(appCtx.DB, appCtx.Logger),
	}
}

func (s *Service) ListMealPlans(ctx context.Context, req *ListMealPlansRequest) (*ListMealPlansResponse, error) {
	page, err := s.plans.List(ctx, server.CallerID(ctx), req.Params)
	if err != nil {
		s.appCtx.Logger.Error("list meal plans failed", "err", err)
		return nil, svcErr.Map(err)
	}
	return &page, nil
}

func (s *Service) GetMealPlan(ctx context.Context, req *MealPlanRequest) (*MealPlanResponse, error) {
	d, err := s.plans.Detail(ctx, server.CallerID(ctx), req.MealPlanID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &d, nil
}

// SaveMealPlan copies a visible plan into the caller's own private plans
// and returns the copy.
func (s *Service) SaveMealPlan(ctx context.Context, req *MealPlanRequest) (*MealPlanResponse, error) {
	callerID := server.CallerID(ctx)
	cp, err := s.mealplans.Clone(ctx, callerID, req.MealPlanID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	d, err := s.plans.Detail(ctx, callerID, cp.ID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &d, nil
}

func (s *Service) LikeMealPlan(ctx context.Context, req *MealPlanRequest) (*EngagementResponse, error) {
	return s.engage(ctx, req.MealPlanID, s.engagement.Like)
}

func (s *Service) UnlikeMealPlan(ctx context.Context, req *MealPlanRequest) (*EngagementResponse, error) {
	return s.engage(ctx, req.MealPlanID, s.engagement.Unlike)
}

func (s *Service) BookmarkMealPlan(ctx context.Context, req *MealPlanRequest) (*EngagementResponse, error) {
	return s.engage(ctx, req.MealPlanID, s.engagement.Bookmark)
}

func (s *Service) UnbookmarkMealPlan(ctx context.Context, req *MealPlanRequest) (*EngagementResponse, error) {
	return s.engage(ctx, req.MealPlanID, s.engagement.Unbookmark)
}

// ApplyMealPlan materializes a plan into a new schedule for the caller.
//
// Behavior:
//   - mode "replace" completes the caller's active schedules in the same
//     transaction; any other non-empty mode but "schedule" is rejected.
//   - A plan that is private to someone else is NotFound.
//
// Example:
//
//	svc.ApplyMealPlan(ctx, &ApplyMealPlanRequest{MealPlanID: 3, StartDate: "2024-06-01"})
func (s *Service) ApplyMealPlan(ctx context.Context, req *ApplyMealPlanRequest) (*ApplyMealPlanResponse, error) {
	callerID := server.CallerID(ctx)
	s.appCtx.Logger.Debug("ApplyMealPlan called", "caller_id", callerID, "plan_id", req.MealPlanID, "mode", req.Mode)

	sched, err := s.mealplans.Apply(ctx, mealplan.ApplyRequest{
		PlanID:    req.MealPlanID,
		UserID:    callerID,
		Title:     req.Title,
		StartDate: req.StartDate,
		Mode:      req.Mode,
	})
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &sched, nil
}

type engageFn func(ctx context.Context, t repository.Target, userID, targetID uint64) (engagement.Stats, error)

func (s *Service) engage(ctx context.Context, planID uint64, fn engageFn) (*EngagementResponse, error) {
	stats, err := fn(ctx, engagement.MealPlan, server.CallerID(ctx), planID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &EngagementResponse{MealPlanID: planID, Stats: stats}, nil
}
