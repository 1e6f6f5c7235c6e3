package progress

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/db"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/repository"
	"github.com/oggyb/mealplanner/internal/validation"
)

// Service answers progress queries over the caller's schedules.
type Service struct {
	schedules *repository.ScheduleRepository
	log       *slog.Logger
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		schedules: repository.NewScheduleRepository(appCtx.DB),
		log:       appCtx.Logger,
	}
}

type dateQuery struct {
	Date string `validate:"required,date"`
}

type statusChange struct {
	Status db.ScheduleStatus `validate:"min=0,max=3"`
}

// Overview summarizes every meal item of an owned schedule.
func (s *Service) Overview(ctx context.Context, callerID, scheduleID uint64) (Overview, error) {
	_, items, err := s.load(ctx, callerID, scheduleID)
	if err != nil {
		return Overview{}, err
	}
	return Summarize(items), nil
}

// ByDate returns the items of one calendar date with their totals against
// the schedule targets. A date outside the schedule is an empty day.
func (s *Service) ByDate(ctx context.Context, callerID, scheduleID uint64, date string) (DayView, error) {
	if err := validation.Struct(dateQuery{Date: date}); err != nil {
		return DayView{}, err
	}

	sched, err := s.owned(ctx, callerID, scheduleID)
	if err != nil {
		return DayView{}, err
	}
	if err := s.checkComplete(ctx, sched); err != nil {
		return DayView{}, err
	}

	items, err := s.schedules.Items(ctx, sched.ID, date)
	if err != nil {
		return DayView{}, err
	}
	dayNumber := 0
	if len(items) > 0 {
		dayNumber = items[0].DayNumber
	}
	return dayView(date, dayNumber, items, targetsOf(*sched)), nil
}

// Days returns the whole schedule broken down per calendar date.
func (s *Service) Days(ctx context.Context, callerID, scheduleID uint64) ([]DayView, error) {
	sched, items, err := s.load(ctx, callerID, scheduleID)
	if err != nil {
		return nil, err
	}
	return GroupByDate(items, targetsOf(*sched)), nil
}

// Complete marks an item completed. Completing a completed item is a no-op.
func (s *Service) Complete(ctx context.Context, callerID, itemID uint64) (ItemView, error) {
	item, err := s.ownedItem(ctx, callerID, itemID)
	if err != nil {
		return ItemView{}, err
	}
	if item.Status == db.MealCompleted {
		return NewItemView(*item), nil
	}
	return s.transition(ctx, item, db.MealCompleted, item.Note)
}

// Skip marks an item skipped, recording note when given. Skipping a skipped
// item without a new note is a no-op.
func (s *Service) Skip(ctx context.Context, callerID, itemID uint64, note string) (ItemView, error) {
	if len([]rune(note)) > 500 {
		return ItemView{}, svcErr.InvalidArgument("note must be at most 500 characters")
	}
	item, err := s.ownedItem(ctx, callerID, itemID)
	if err != nil {
		return ItemView{}, err
	}
	if note == "" {
		note = item.Note
	}
	if item.Status == db.MealSkipped && note == item.Note {
		return NewItemView(*item), nil
	}
	return s.transition(ctx, item, db.MealSkipped, note)
}

// List returns the caller's schedules, newest first.
func (s *Service) List(ctx context.Context, callerID uint64) ([]ScheduleView, error) {
	rows, err := s.schedules.ListOwned(ctx, callerID)
	if err != nil {
		return nil, err
	}
	out := make([]ScheduleView, len(rows))
	for i, r := range rows {
		out[i] = NewScheduleView(r)
	}
	return out, nil
}

// Active returns the caller's most recently created active schedule.
func (s *Service) Active(ctx context.Context, callerID uint64) (ScheduleView, error) {
	sched, err := s.schedules.LatestActive(ctx, callerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ScheduleView{}, svcErr.NotFound("no active schedule")
	} else if err != nil {
		return ScheduleView{}, err
	}
	return NewScheduleView(*sched), nil
}

// SetStatus moves an owned schedule to status. Meal items are untouched.
func (s *Service) SetStatus(ctx context.Context, callerID, scheduleID uint64, status db.ScheduleStatus) (ScheduleView, error) {
	if err := validation.Struct(statusChange{Status: status}); err != nil {
		return ScheduleView{}, err
	}
	sched, err := s.owned(ctx, callerID, scheduleID)
	if err != nil {
		return ScheduleView{}, err
	}
	if sched.Status != status {
		if err := s.schedules.SetStatus(ctx, sched.ID, status); err != nil {
			return ScheduleView{}, err
		}
		s.log.Info("schedule status changed", "schedule_id", sched.ID, "from", sched.Status, "to", status)
		sched.Status = status
	}
	return NewScheduleView(*sched), nil
}

// Delete removes an owned schedule together with its meal items.
func (s *Service) Delete(ctx context.Context, callerID, scheduleID uint64) error {
	sched, err := s.owned(ctx, callerID, scheduleID)
	if err != nil {
		return err
	}
	if err := s.schedules.Delete(ctx, sched.ID); err != nil {
		return err
	}
	s.log.Info("schedule deleted", "schedule_id", sched.ID, "owner_id", callerID)
	return nil
}

func (s *Service) transition(ctx context.Context, item *db.MealItem, status db.MealItemStatus, note string) (ItemView, error) {
	if err := s.schedules.SetItemState(ctx, item.ID, status, note); err != nil {
		return ItemView{}, err
	}
	s.log.Debug("meal item transition", "item_id", item.ID, "from", item.Status, "to", status)
	item.Status = status
	item.Note = note
	return NewItemView(*item), nil
}

func (s *Service) owned(ctx context.Context, callerID, scheduleID uint64) (*db.Schedule, error) {
	sched, err := s.schedules.FindOwned(ctx, callerID, scheduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.NotFound("schedule %d not found", scheduleID)
	} else if err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *Service) ownedItem(ctx context.Context, callerID, itemID uint64) (*db.MealItem, error) {
	item, err := s.schedules.FindItemOwned(ctx, callerID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svcErr.NotFound("meal item %d not found", itemID)
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

// load returns an owned schedule with all of its items, rejecting a
// schedule whose items are not all present.
func (s *Service) load(ctx context.Context, callerID, scheduleID uint64) (*db.Schedule, []db.MealItem, error) {
	sched, err := s.owned(ctx, callerID, scheduleID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.schedules.Items(ctx, sched.ID, "")
	if err != nil {
		return nil, nil, err
	}
	if len(items) != sched.ItemCount {
		s.log.Error("partial materialization", "schedule_id", sched.ID, "want", sched.ItemCount, "got", len(items))
		return nil, nil, svcErr.Partial(sched.ID, sched.ItemCount, len(items))
	}
	return sched, items, nil
}

func (s *Service) checkComplete(ctx context.Context, sched *db.Schedule) error {
	n, err := s.schedules.CountItems(ctx, sched.ID)
	if err != nil {
		return err
	}
	if int(n) != sched.ItemCount {
		s.log.Error("partial materialization", "schedule_id", sched.ID, "want", sched.ItemCount, "got", n)
		return svcErr.Partial(sched.ID, sched.ItemCount, int(n))
	}
	return nil
}
