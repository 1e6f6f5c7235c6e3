package schedules

import (
	"context"

	"github.com/oggyb/mealplanner/internal/app"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/progress"
	"github.com/oggyb/mealplanner/internal/server"
)

// Service implements the ScheduleService gRPC API. Every call is scoped to
// the caller's own schedules, so an identity is required.
type Service struct {
	appCtx   *app.AppContext
	progress *progress.Service
}

// NewScheduleService creates a new Schedule service with dependencies from AppContext.
func NewScheduleService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx, progress: progress.NewService(appCtx)}
}

func caller(ctx context.Context) (uint64, error) {
	id := server.CallerID(ctx)
	if id == 0 {
		return 0, svcErr.Map(svcErr.InvalidArgument("%s is required", server.UserIDHeader))
	}
	return id, nil
}

func (s *Service) ListSchedules(ctx context.Context, _ *ListSchedulesRequest) (*ListSchedulesResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.progress.List(ctx, callerID)
	if err != nil {
		s.appCtx.Logger.Error("list schedules failed", "err", err)
		return nil, svcErr.Map(err)
	}
	return &ListSchedulesResponse{Items: items}, nil
}

// GetActiveSchedule returns the most recently created active schedule.
func (s *Service) GetActiveSchedule(ctx context.Context, _ *ActiveScheduleRequest) (*ScheduleResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	sched, err := s.progress.Active(ctx, callerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &sched, nil
}

func (s *Service) GetOverview(ctx context.Context, req *ScheduleRequest) (*OverviewResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.progress.Overview(ctx, callerID, req.ScheduleID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &OverviewResponse{ScheduleID: req.ScheduleID, Overview: o}, nil
}

func (s *Service) GetMealsByDate(ctx context.Context, req *MealsByDateRequest) (*MealsByDateResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	day, err := s.progress.ByDate(ctx, callerID, req.ScheduleID, req.Date)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &day, nil
}

func (s *Service) GetDays(ctx context.Context, req *ScheduleRequest) (*DaysResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	days, err := s.progress.Days(ctx, callerID, req.ScheduleID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &DaysResponse{ScheduleID: req.ScheduleID, Days: days}, nil
}

func (s *Service) CompleteMealItem(ctx context.Context, req *MealItemRequest) (*MealItemResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.progress.Complete(ctx, callerID, req.MealItemID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &item, nil
}

func (s *Service) SkipMealItem(ctx context.Context, req *MealItemRequest) (*MealItemResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.progress.Skip(ctx, callerID, req.MealItemID, req.Note)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &item, nil
}

// UpdateScheduleStatus pauses, resumes, completes or cancels a schedule.
func (s *Service) UpdateScheduleStatus(ctx context.Context, req *UpdateStatusRequest) (*ScheduleResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	sched, err := s.progress.SetStatus(ctx, callerID, req.ScheduleID, req.Status)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &sched, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, req *ScheduleRequest) (*DeleteScheduleResponse, error) {
	callerID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.progress.Delete(ctx, callerID, req.ScheduleID); err != nil {
		return nil, svcErr.Map(err)
	}
	return &DeleteScheduleResponse{ScheduleID: req.ScheduleID, Deleted: true}, nil
}
