package schedules

import (
	"github.com/oggyb/mealplanner/internal/db"
	"github.com/oggyb/mealplanner/internal/progress"
)

type ListSchedulesRequest struct{}

type ListSchedulesResponse struct {
	Items []progress.ScheduleView `json:"items"`
}

type ActiveScheduleRequest struct{}

type ScheduleRequest struct {
	ScheduleID uint64 `json:"schedule_id"`
}

type ScheduleResponse = progress.ScheduleView

type OverviewResponse struct {
	ScheduleID uint64 `json:"schedule_id"`
	progress.Overview
}

type MealsByDateRequest struct {
	ScheduleID uint64 `json:"schedule_id"`
	Date       string `json:"date"`
}

type MealsByDateResponse = progress.DayView

type DaysResponse struct {
	ScheduleID uint64             `json:"schedule_id"`
	Days       []progress.DayView `json:"days"`
}

type MealItemRequest struct {
	MealItemID uint64 `json:"meal_item_id"`
	Note       string `json:"note,omitempty"`
}

type MealItemResponse = progress.ItemView

type UpdateStatusRequest struct {
	ScheduleID uint64            `json:"schedule_id"`
	Status     db.ScheduleStatus `json:"status"`
}

type DeleteScheduleResponse struct {
	ScheduleID uint64 `json:"schedule_id"`
	Deleted    bool   `json:"deleted"`
}
