package readmodel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/mealplanner/internal/db"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/filter"
	"github.com/oggyb/mealplanner/internal/readmodel"
	"github.com/oggyb/mealplanner/internal/recommend"
	"github.com/oggyb/mealplanner/internal/testutil"
)

func TestPlans_ListAndDetail(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	viewer := w.fx.User("viewer")

	public := w.fx.Plan(w.chef.ID, 3, 2, 0)
	private := w.fx.Plan(w.chef.ID, 1, 1, 0)
	require.NoError(t, w.gdb.Model(&db.MealPlan{}).Where("id = ?", private.ID).Update("is_public", false).Error)
	require.NoError(t, w.gdb.Create(&db.LikeMealPlan{UserID: viewer.ID, MealPlanID: public.ID}).Error)

	appCtx, _ := testutil.NewAppContext(t, w.gdb, recommend.Noop{})
	plans := readmodel.NewPlans(appCtx)

	page, err := plans.List(ctx, viewer.ID, filter.Params{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, public.ID, page.Items[0].ID)
	assert.True(t, page.Items[0].IsLiked)
	assert.Equal(t, int64(1), page.Items[0].LikeCount)

	mine, err := plans.List(ctx, w.chef.ID, filter.Params{readmodel.ParamMine: "true"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.Total)

	d, err := plans.Detail(ctx, viewer.ID, public.ID)
	require.NoError(t, err)
	require.Len(t, d.Days, 3)
	for i, day := range d.Days {
		assert.Equal(t, i+1, day.DayNumber)
		require.Len(t, day.Meals, 2)
		assert.Equal(t, 1, day.Meals[0].MealOrder)
		assert.Equal(t, 2, day.Meals[1].MealOrder)
	}

	_, err = plans.Detail(ctx, viewer.ID, private.ID)
	assert.True(t, svcErr.IsNotFound(err))

	own, err := plans.Detail(ctx, w.chef.ID, private.ID)
	require.NoError(t, err)
	assert.False(t, own.IsPublic)
}
