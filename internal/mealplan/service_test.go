package mealplan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/db"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/mealplan"
	"github.com/oggyb/mealplanner/internal/recommend"
	"github.com/oggyb/mealplanner/internal/testutil"
)

type env struct {
	gdb    *gorm.DB
	fx     *testutil.Fixture
	svc    *mealplan.Service
	author db.User
	user   db.User
	recipe db.Recipe
}

func setup(t *testing.T) env {
	t.Helper()
	gdb := testutil.NewDB(t)
	fx := testutil.NewFixture(t, gdb)
	author := fx.User("author")
	cat := fx.Category("mains")
	r := fx.Recipe(db.Recipe{
		OwnerID:      author.ID,
		CategoryID:   cat.ID,
		Title:        "porridge",
		Status:       db.RecipeAccepted,
		Energy:       350,
		Protein:      12,
		Fat:          6,
		Carbohydrate: 60,
	})
	appCtx, _ := testutil.NewAppContext(t, gdb, recommend.Noop{})
	return env{gdb: gdb, fx: fx, svc: mealplan.NewService(appCtx), author: author, user: fx.User("user"), recipe: r}
}

func (e env) items(t *testing.T, scheduleID uint64) []db.MealItem {
	t.Helper()
	var items []db.MealItem
	require.NoError(t, e.gdb.Where("schedule_id = ?", scheduleID).Order("date, meal_order").Find(&items).Error)
	return items
}

func TestApply_MaterializesEveryMeal(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	plan := e.fx.Plan(e.author.ID, 3, 2, e.recipe.ID)

	sched, err := e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.user.ID, StartDate: "2024-06-01"})
	require.NoError(t, err)
	assert.Equal(t, db.ScheduleActive, sched.Status)
	assert.Equal(t, 6, sched.ItemCount)
	assert.Equal(t, plan.Title, sched.Title)
	assert.Equal(t, 2000.0, sched.Targets.Calories)

	items := e.items(t, sched.ID)
	require.Len(t, items, 6)
	for _, it := range items {
		assert.GreaterOrEqual(t, it.Date, "2024-06-01")
		assert.LessOrEqual(t, it.Date, "2024-06-03")
		assert.Equal(t, "porridge", it.Name)
		assert.Equal(t, 350.0, it.Calories)
	}
}

func TestApply_SnapshotIsFrozen(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	plan := e.fx.Plan(e.author.ID, 2, 1, e.recipe.ID)

	sched, err := e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.user.ID, StartDate: "2024-06-01"})
	require.NoError(t, err)

	require.NoError(t, e.gdb.Model(&db.Recipe{}).Where("id = ?", e.recipe.ID).
		Updates(map[string]any{"energy": 999, "protein": 99}).Error)

	for _, it := range e.items(t, sched.ID) {
		assert.Equal(t, 350.0, it.Calories)
		assert.Equal(t, 12.0, it.Protein)
	}
}

func TestApply_ReplaceCompletesPreviousActive(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	plan := e.fx.Plan(e.author.ID, 3, 2, e.recipe.ID)

	s1, err := e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.user.ID, StartDate: "2024-06-01"})
	require.NoError(t, err)
	require.NoError(t, e.gdb.Model(&db.MealItem{}).Where("schedule_id = ? AND meal_order = 1", s1.ID).
		Update("status", db.MealCompleted).Error)
	before := e.items(t, s1.ID)

	s2, err := e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.user.ID, StartDate: "2024-07-01", Mode: "replace"})
	require.NoError(t, err)

	var got db.Schedule
	require.NoError(t, e.gdb.First(&got, s1.ID).Error)
	assert.Equal(t, db.ScheduleCompleted, got.Status)
	assert.Equal(t, db.ScheduleActive, s2.Status)

	var active int64
	require.NoError(t, e.gdb.Model(&db.Schedule{}).
		Where("owner_id = ? AND status = ?", e.user.ID, db.ScheduleActive).Count(&active).Error)
	assert.Equal(t, int64(1), active)

	assert.Equal(t, before, e.items(t, s1.ID))
}

func TestApply_ScheduleModeCoexists(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	plan := e.fx.Plan(e.author.ID, 1, 1, e.recipe.ID)

	for range 2 {
		_, err := e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.user.ID, StartDate: "2024-06-01", Mode: "schedule"})
		require.NoError(t, err)
	}
	var active int64
	require.NoError(t, e.gdb.Model(&db.Schedule{}).
		Where("owner_id = ? AND status = ?", e.user.ID, db.ScheduleActive).Count(&active).Error)
	assert.Equal(t, int64(2), active)
}

func TestApply_Errors(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	plan := e.fx.Plan(e.author.ID, 1, 1, e.recipe.ID)
	require.NoError(t, e.gdb.Model(&db.MealPlan{}).Where("id = ?", plan.ID).Update("is_public", false).Error)

	_, err := e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.user.ID, StartDate: "2024-06-01"})
	assert.True(t, svcErr.IsNotFound(err), "private plan of someone else")

	_, err = e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.author.ID, StartDate: "2024-06-01"})
	assert.NoError(t, err, "owner may apply a private plan")

	_, err = e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: 9999, UserID: e.user.ID, StartDate: "2024-06-01"})
	assert.True(t, svcErr.IsNotFound(err))

	_, err = e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.author.ID, StartDate: "01/06/2024"})
	assert.Equal(t, svcErr.KindInvalidArgument, svcErr.KindOf(err))

	_, err = e.svc.Apply(ctx, mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.author.ID, StartDate: "2024-06-01", Mode: "merge"})
	assert.Equal(t, svcErr.KindInvalidArgument, svcErr.KindOf(err))

	var n int64
	require.NoError(t, e.gdb.Model(&db.Schedule{}).Where("owner_id = ?", e.user.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestApply_PastStartDateAccepted(t *testing.T) {
	e := setup(t)
	plan := e.fx.Plan(e.author.ID, 1, 1, e.recipe.ID)
	sched, err := e.svc.Apply(context.Background(), mealplan.ApplyRequest{PlanID: plan.ID, UserID: e.user.ID, StartDate: "1999-12-31"})
	require.NoError(t, err)
	assert.Equal(t, "1999-12-31", sched.StartDate)
}

func TestClone(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	plan := e.fx.Plan(e.author.ID, 2, 3, e.recipe.ID)

	cp, err := e.svc.Clone(ctx, e.user.ID, plan.ID)
	require.NoError(t, err)
	assert.NotEqual(t, plan.ID, cp.ID)
	assert.Equal(t, e.user.ID, cp.OwnerID)
	require.NotNil(t, cp.SourcePlanID)
	assert.Equal(t, plan.ID, *cp.SourcePlanID)
	assert.False(t, cp.IsPublic)

	var meals int64
	require.NoError(t, e.gdb.Model(&db.MealPlanMeal{}).
		Joins("JOIN meal_plan_days d ON d.id = meal_plan_meals.day_id").
		Where("d.meal_plan_id = ?", cp.ID).Count(&meals).Error)
	assert.Equal(t, int64(6), meals)

	var schedules int64
	require.NoError(t, e.gdb.Model(&db.Schedule{}).Count(&schedules).Error)
	assert.Zero(t, schedules)
}
