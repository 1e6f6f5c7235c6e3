// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oggyb/mealplanner/internal/db"
)

// NewDB spins up a migrated, shared-cache in-memory SQLite database that
// lives for the duration of the test. Each test gets its own database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return database
}

// Logger discards all output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fixture inserts rows for the common test entities.
type Fixture struct {
	t  *testing.T
	db *gorm.DB
}

func NewFixture(t *testing.T, database *gorm.DB) *Fixture {
	return &Fixture{t: t, db: database}
}

func (f *Fixture) User(name string) db.User {
	f.t.Helper()
	u := db.User{Username: name, Email: name + "@test.com", PasswordHash: "x", Avatar: name + ".png"}
	require.NoError(f.t, f.db.Create(&u).Error)
	return u
}

func (f *Fixture) Category(name string) db.Category {
	f.t.Helper()
	c := db.Category{Name: name}
	require.NoError(f.t, f.db.Create(&c).Error)
	return c
}

// Recipe inserts r after filling in a title when empty. CreatedAt is kept
// when set so tests can control ordering.
func (f *Fixture) Recipe(r db.Recipe) db.Recipe {
	f.t.Helper()
	if r.Title == "" {
		r.Title = "recipe"
	}
	require.NoError(f.t, f.db.Create(&r).Error)
	return r
}

// Plan inserts a public plan of days × mealsPerDay meals, each
// referencing recipeID when non-zero.
func (f *Fixture) Plan(ownerID uint64, days, mealsPerDay int, recipeID uint64) db.MealPlan {
	f.t.Helper()
	types := []db.MealType{db.MealBreakfast, db.MealLunch, db.MealDinner, db.MealSnack}
	plan := db.MealPlan{
		OwnerID:        ownerID,
		Title:          fmt.Sprintf("%d day plan", days),
		DurationDays:   days,
		IsPublic:       true,
		TargetCalories: 2000,
		TargetProtein:  100,
		TargetCarbs:    250,
		TargetFat:      70,
	}
	for d := 1; d <= days; d++ {
		day := db.MealPlanDay{DayNumber: d}
		for m := 1; m <= mealsPerDay; m++ {
			meal := db.MealPlanMeal{MealType: types[(m-1)%len(types)], MealOrder: m}
			if recipeID != 0 {
				id := recipeID
				meal.RecipeID = &id
			} else {
				meal.Name = fmt.Sprintf("meal %d-%d", d, m)
			}
			day.Meals = append(day.Meals, meal)
		}
		plan.Days = append(plan.Days, day)
	}
	require.NoError(f.t, f.db.Create(&plan).Error)
	return plan
}
