// Package mealplan expands meal-plan templates into dated schedules and
// copies templates between owners.
package mealplan

import (
	"time"

	"github.com/oggyb/mealplanner/internal/db"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/validation"
)

// Mode selects what happens to the caller's active schedules on apply.
type Mode string

const (
	// ModeSchedule adds a new active schedule next to any existing ones.
	ModeSchedule Mode = "schedule"
	// ModeReplace completes the caller's active schedules first.
	ModeReplace Mode = "replace"
)

// ParseMode maps the wire value to a Mode. Empty means ModeSchedule.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSchedule:
		return ModeSchedule, nil
	case ModeReplace:
		return ModeReplace, nil
	default:
		return "", svcErr.InvalidArgument("unknown apply mode %q", s)
	}
}

// ValidateTemplate checks that day numbers are exactly 1..DurationDays and
// that meal order is unique within each day. Days must be sorted.
func ValidateTemplate(plan *db.MealPlan) error {
	if plan.DurationDays <= 0 {
		return svcErr.InvalidArgument("meal plan %d has no days", plan.ID)
	}
	if len(plan.Days) != plan.DurationDays {
		return svcErr.InvalidArgument("meal plan %d declares %d days but has %d", plan.ID, plan.DurationDays, len(plan.Days))
	}
	for i, day := range plan.Days {
		if day.DayNumber != i+1 {
			return svcErr.InvalidArgument("meal plan %d: day numbers are not contiguous at day %d", plan.ID, day.DayNumber)
		}
		seen := make(map[int]struct{}, len(day.Meals))
		for _, m := range day.Meals {
			if _, dup := seen[m.MealOrder]; dup {
				return svcErr.InvalidArgument("meal plan %d: day %d repeats meal order %d", plan.ID, day.DayNumber, m.MealOrder)
			}
			seen[m.MealOrder] = struct{}{}
		}
	}
	return nil
}

// RecipeIDs returns the distinct recipes referenced by the plan.
func RecipeIDs(plan *db.MealPlan) []uint64 {
	seen := map[uint64]struct{}{}
	var ids []uint64
	for _, day := range plan.Days {
		for _, m := range day.Meals {
			if m.RecipeID == nil {
				continue
			}
			if _, ok := seen[*m.RecipeID]; !ok {
				seen[*m.RecipeID] = struct{}{}
				ids = append(ids, *m.RecipeID)
			}
		}
	}
	return ids
}

// Materialize expands plan into one MealItem per meal, dated start plus
// day number minus one. Nutrition is snapshotted per field from the meal
// override, else the referenced recipe, else zero. The name falls back to
// the recipe title. The plan is not modified.
func Materialize(plan *db.MealPlan, recipes map[uint64]db.Recipe, start time.Time) []db.MealItem {
	items := make([]db.MealItem, 0, mealCount(plan))
	for _, day := range plan.Days {
		date := start.AddDate(0, 0, day.DayNumber-1).Format(validation.DateLayout)
		for _, m := range day.Meals {
			var rc db.Recipe
			if m.RecipeID != nil {
				rc = recipes[*m.RecipeID]
			}

			name := m.Name
			if name == "" {
				name = rc.Title
			}
			items = append(items, db.MealItem{
				Date:      date,
				DayNumber: day.DayNumber,
				MealType:  m.MealType,
				MealOrder: m.MealOrder,
				RecipeID:  m.RecipeID,
				Name:      name,
				Calories:  pick(m.Calories, rc.Energy),
				Protein:   pick(m.Protein, rc.Protein),
				Carbs:     pick(m.Carbs, rc.Carbohydrate),
				Fat:       pick(m.Fat, rc.Fat),
				Status:    db.MealPending,
			})
		}
	}
	return items
}

func pick(override *float64, fallback float64) float64 {
	if override != nil {
		return *override
	}
	return fallback
}

func mealCount(plan *db.MealPlan) int {
	n := 0
	for _, day := range plan.Days {
		n += len(day.Meals)
	}
	return n
}
