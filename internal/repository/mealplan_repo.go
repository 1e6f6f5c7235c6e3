package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/db"
)

// MealPlanRepository provides data access for meal plan templates.
type MealPlanRepository struct {
	db *gorm.DB
}

func NewMealPlanRepository(database *gorm.DB) *MealPlanRepository {
	return &MealPlanRepository{db: database}
}

// LoadVisible loads a plan with its days and meals ordered by day number and
// meal order. Private plans are only visible to their owner; anything else
// is gorm.ErrRecordNotFound.
func (r *MealPlanRepository) LoadVisible(ctx context.Context, viewerID, planID uint64) (*db.MealPlan, error) {
	var plan db.MealPlan
	err := r.db.WithContext(ctx).
		Preload("Days", func(tx *gorm.DB) *gorm.DB { return tx.Order("day_number ASC") }).
		Preload("Days.Meals", func(tx *gorm.DB) *gorm.DB { return tx.Order("meal_order ASC, id ASC") }).
		Where("id = ? AND (is_public = ? OR owner_id = ?)", planID, true, viewerID).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// List returns one page of plans, newest first. When mine is set only the
// viewer's own plans (public or not) are listed, otherwise public plans.
func (r *MealPlanRepository) List(
	ctx context.Context,
	viewerID uint64,
	mine bool,
	offset, limit int,
	ascending bool,
) ([]db.MealPlan, int64, error) {
	base := r.db.WithContext(ctx).Model(&db.MealPlan{})
	if mine {
		base = base.Where("owner_id = ?", viewerID)
	} else {
		base = base.Where("is_public = ?", true)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count meal plans: %w", err)
	}

	dir := "DESC"
	if ascending {
		dir = "ASC"
	}
	var plans []db.MealPlan
	err := base.Session(&gorm.Session{}).
		Order(fmt.Sprintf("created_at %s, id %s", dir, dir)).
		Offset(offset).
		Limit(limit).
		Find(&plans).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list meal plans: %w", err)
	}
	return plans, total, nil
}

// Create inserts a plan together with its days and meals in one transaction.
func (r *MealPlanRepository) Create(ctx context.Context, plan *db.MealPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(plan).Error
	})
}
