// Package progress derives completion and nutrition statistics of schedules
// from the current state of their meal items, and owns the item
// completion transitions.
package progress

import (
	"time"

	"github.com/oggyb/mealplanner/internal/db"
)

// Overview counts meal items by status.
type Overview struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Skipped        int     `json:"skipped"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completionRate"`
}

// Nutrition is used both for frozen totals and for schedule targets.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type ItemView struct {
	ID        uint64            `json:"id"`
	Date      string            `json:"date"`
	DayNumber int               `json:"day_number"`
	MealType  db.MealType       `json:"meal_type"`
	MealOrder int               `json:"meal_order"`
	RecipeID  *uint64           `json:"recipe_id,omitempty"`
	Name      string            `json:"name"`
	Nutrition Nutrition         `json:"nutrition"`
	Status    db.MealItemStatus `json:"status"`
	Note      string            `json:"note,omitempty"`
}

// DayView is one calendar date of a schedule.
type DayView struct {
	Date      string     `json:"date"`
	DayNumber int        `json:"day_number"`
	Items     []ItemView `json:"items"`
	Totals    Nutrition  `json:"totals"`
	Targets   Nutrition  `json:"targets"`
	Overview  Overview   `json:"overview"`
}

type ScheduleView struct {
	ID         uint64            `json:"id"`
	MealPlanID uint64            `json:"meal_plan_id"`
	Title      string            `json:"title"`
	StartDate  string            `json:"start_date"`
	Status     db.ScheduleStatus `json:"status"`
	ItemCount  int               `json:"item_count"`
	Targets    Nutrition         `json:"targets"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Summarize counts items by status. CompletionRate is completed/total and 0
// for an empty set.
func Summarize(items []db.MealItem) Overview {
	o := Overview{Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case db.MealCompleted:
			o.Completed++
		case db.MealSkipped:
			o.Skipped++
		default:
			o.Pending++
		}
	}
	if o.Total > 0 {
		o.CompletionRate = float64(o.Completed) / float64(o.Total)
	}
	return o
}

// Totals sums the frozen nutrition snapshots of items.
func Totals(items []db.MealItem) Nutrition {
	var n Nutrition
	for _, it := range items {
		n.Calories += it.Calories
		n.Protein += it.Protein
		n.Carbs += it.Carbs
		n.Fat += it.Fat
	}
	return n
}

// GroupByDate splits calendar-ordered items into DayViews.
func GroupByDate(items []db.MealItem, targets Nutrition) []DayView {
	days := []DayView{}
	start := 0
	for i := 1; i <= len(items); i++ {
		if i < len(items) && items[i].Date == items[start].Date {
			continue
		}
		days = append(days, dayView(items[start].Date, items[start].DayNumber, items[start:i], targets))
		start = i
	}
	return days
}

func dayView(date string, dayNumber int, items []db.MealItem, targets Nutrition) DayView {
	views := make([]ItemView, len(items))
	for i, it := range items {
		views[i] = NewItemView(it)
	}
	return DayView{
		Date:      date,
		DayNumber: dayNumber,
		Items:     views,
		Totals:    Totals(items),
		Targets:   targets,
		Overview:  Summarize(items),
	}
}

func NewItemView(it db.MealItem) ItemView {
	return ItemView{
		ID:        it.ID,
		Date:      it.Date,
		DayNumber: it.DayNumber,
		MealType:  it.MealType,
		MealOrder: it.MealOrder,
		RecipeID:  it.RecipeID,
		Name:      it.Name,
		Nutrition: Nutrition{Calories: it.Calories, Protein: it.Protein, Carbs: it.Carbs, Fat: it.Fat},
		Status:    it.Status,
		Note:      it.Note,
	}
}

func NewScheduleView(s db.Schedule) ScheduleView {
	return ScheduleView{
		ID:         s.ID,
		MealPlanID: s.MealPlanID,
		Title:      s.Title,
		StartDate:  s.StartDate,
		Status:     s.Status,
		ItemCount:  s.ItemCount,
		Targets:    targetsOf(s),
		CreatedAt:  s.CreatedAt,
	}
}

func targetsOf(s db.Schedule) Nutrition {
	return Nutrition{
		Calories: s.TargetCalories,
		Protein:  s.TargetProtein,
		Carbs:    s.TargetCarbs,
		Fat:      s.TargetFat,
	}
}
