package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/db"
)

// itemBatchSize bounds one multi-row INSERT of meal items.
const itemBatchSize = 200

// ScheduleRepository provides data access for schedules and their meal items.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(database *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: database}
}

// CreateMaterialized persists a schedule and all of its meal items.
//
// Behavior:
//   - One transaction: either the schedule and every item are visible, or none.
//   - When replaceActive is set the owner's active schedules are moved to
//     completed first; the update is keyed on status so duplicates are no-ops.
//   - ItemCount is set from len(items) so readers can detect partial writes.
//
// Returns the ids of schedules that were completed by the replace step.
func (r *ScheduleRepository) CreateMaterialized(
	ctx context.Context,
	schedule *db.Schedule,
	items []db.MealItem,
	replaceActive bool,
) ([]uint64, error) {
	var replaced []uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceActive {
			if err := tx.Model(&db.Schedule{}).
				Where("owner_id = ? AND status = ?", schedule.OwnerID, db.ScheduleActive).
				Pluck("id", &replaced).Error; err != nil {
				return fmt.Errorf("find active schedules: %w", err)
			}
			if len(replaced) > 0 {
				if err := tx.Model(&db.Schedule{}).
					Where("id IN ? AND status = ?", replaced, db.ScheduleActive).
					Update("status", db.ScheduleCompleted).Error; err != nil {
					return fmt.Errorf("complete active schedules: %w", err)
				}
			}
		}

		schedule.ItemCount = len(items)
		if err := tx.Create(schedule).Error; err != nil {
			return fmt.Errorf("create schedule: %w", err)
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ScheduleID = schedule.ID
		}
		if err := tx.CreateInBatches(&items, itemBatchSize).Error; err != nil {
			return fmt.Errorf("create meal items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return replaced, nil
}

// FindOwned loads a schedule only if it belongs to ownerID.
func (r *ScheduleRepository) FindOwned(ctx context.Context, ownerID, scheduleID uint64) (*db.Schedule, error) {
	var s db.Schedule
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", scheduleID, ownerID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListOwned returns the owner's schedules, newest first.
func (r *ScheduleRepository) ListOwned(ctx context.Context, ownerID uint64) ([]db.Schedule, error) {
	var out []db.Schedule
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return out, nil
}

// LatestActive returns the most recently created active schedule of the owner.
func (r *ScheduleRepository) LatestActive(ctx context.Context, ownerID uint64) (*db.Schedule, error) {
	var s db.Schedule
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, db.ScheduleActive).
		Order("created_at DESC, id DESC").
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Items returns the schedule's meal items in calendar order. An empty date
// means every date.
func (r *ScheduleRepository) Items(ctx context.Context, scheduleID uint64, date string) ([]db.MealItem, error) {
	var items []db.MealItem
	q := r.db.WithContext(ctx).Where("schedule_id = ?", scheduleID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Order("date ASC, meal_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load meal items: %w", err)
	}
	return items, nil
}

// CountItems returns how many meal items the schedule currently has.
func (r *ScheduleRepository) CountItems(ctx context.Context, scheduleID uint64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&db.MealItem{}).
		Where("schedule_id = ?", scheduleID).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count meal items: %w", err)
	}
	return n, nil
}

// FindItemOwned loads a meal item whose schedule belongs to ownerID.
func (r *ScheduleRepository) FindItemOwned(ctx context.Context, ownerID, itemID uint64) (*db.MealItem, error) {
	var item db.MealItem
	err := r.db.WithContext(ctx).
		Select("meal_items.*").
		Joins("JOIN user_meal_schedules s ON s.id = meal_items.schedule_id").
		Where("meal_items.id = ? AND s.owner_id = ?", itemID, ownerID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SetItemState writes status and note of one meal item. These are the only
// MealItem columns ever updated after creation.
func (r *ScheduleRepository) SetItemState(ctx context.Context, itemID uint64, status db.MealItemStatus, note string) error {
	return r.db.WithContext(ctx).
		Model(&db.MealItem{}).
		Where("id = ?", itemID).
		Updates(map[string]any{"status": status, "note": note}).Error
}

// SetStatus changes the lifecycle status of an owned schedule.
func (r *ScheduleRepository) SetStatus(ctx context.Context, scheduleID uint64, status db.ScheduleStatus) error {
	return r.db.WithContext(ctx).
		Model(&db.Schedule{}).
		Where("id = ?", scheduleID).
		Update("status", status).Error
}

// Delete removes a schedule and all of its meal items.
func (r *ScheduleRepository) Delete(ctx context.Context, scheduleID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", scheduleID).Delete(&db.MealItem{}).Error; err != nil {
			return fmt.Errorf("delete meal items: %w", err)
		}
		if err := tx.Delete(&db.Schedule{}, scheduleID).Error; err != nil {
			return fmt.Errorf("delete schedule: %w", err)
		}
		return nil
	})
}
