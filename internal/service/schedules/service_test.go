package schedules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/mealplanner/internal/db"
	"github.com/oggyb/mealplanner/internal/mealplan"
	"github.com/oggyb/mealplanner/internal/recommend"
	"github.com/oggyb/mealplanner/internal/service/schedules"
	"github.com/oggyb/mealplanner/internal/testutil"
)

func TestScheduleService(t *testing.T) {
	gdb := testutil.NewDB(t)
	fx := testutil.NewFixture(t, gdb)
	author, user := fx.User("author"), fx.User("user")
	plan := fx.Plan(author.ID, 3, 2, 0)

	appCtx, _ := testutil.NewAppContext(t, gdb, recommend.Noop{})
	applied, err := mealplan.NewService(appCtx).Apply(context.Background(),
		mealplan.ApplyRequest{PlanID: plan.ID, UserID: user.ID, StartDate: "2024-06-01"})
	require.NoError(t, err)

	conn := testutil.Dial(t, schedules.NewRegistrar(appCtx))
	ctx := testutil.AsUser(context.Background(), user.ID)
	call := func(ctx context.Context, method string, req, resp any) error {
		return conn.Invoke(ctx, "/"+schedules.ServiceName+"/"+method, req, resp)
	}

	var active schedules.ScheduleResponse
	require.NoError(t, call(ctx, "GetActiveSchedule", &schedules.ActiveScheduleRequest{}, &active))
	assert.Equal(t, applied.ID, active.ID)

	var day schedules.MealsByDateResponse
	require.NoError(t, call(ctx, "GetMealsByDate", &schedules.MealsByDateRequest{ScheduleID: active.ID, Date: "2024-06-01"}, &day))
	require.Len(t, day.Items, 2)

	var item schedules.MealItemResponse
	require.NoError(t, call(ctx, "CompleteMealItem", &schedules.MealItemRequest{MealItemID: day.Items[0].ID}, &item))
	assert.Equal(t, db.MealCompleted, item.Status)
	require.NoError(t, call(ctx, "SkipMealItem", &schedules.MealItemRequest{MealItemID: day.Items[1].ID, Note: "late"}, &item))
	assert.Equal(t, db.MealSkipped, item.Status)
	assert.Equal(t, "late", item.Note)

	var overview schedules.OverviewResponse
	require.NoError(t, call(ctx, "GetOverview", &schedules.ScheduleRequest{ScheduleID: active.ID}, &overview))
	assert.Equal(t, 6, overview.Total)
	assert.Equal(t, 1, overview.Completed)
	assert.Equal(t, 1, overview.Skipped)
	assert.Equal(t, 4, overview.Pending)
	assert.InDelta(t, 1.0/6.0, overview.CompletionRate, 1e-9)

	var days schedules.DaysResponse
	require.NoError(t, call(ctx, "GetDays", &schedules.ScheduleRequest{ScheduleID: active.ID}, &days))
	assert.Len(t, days.Days, 3)

	var updated schedules.ScheduleResponse
	require.NoError(t, call(ctx, "UpdateScheduleStatus", &schedules.UpdateStatusRequest{ScheduleID: active.ID, Status: db.ScheduleCancelled}, &updated))
	assert.Equal(t, db.ScheduleCancelled, updated.Status)

	var list schedules.ListSchedulesResponse
	require.NoError(t, call(ctx, "ListSchedules", &schedules.ListSchedulesRequest{}, &list))
	assert.Len(t, list.Items, 1)

	stranger := testutil.AsUser(context.Background(), author.ID)
	err = call(stranger, "GetOverview", &schedules.ScheduleRequest{ScheduleID: active.ID}, &overview)
	assert.Equal(t, codes.NotFound, status.Code(err))

	err = call(context.Background(), "ListSchedules", &schedules.ListSchedulesRequest{}, &list)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	var deleted schedules.DeleteScheduleResponse
	require.NoError(t, call(ctx, "DeleteSchedule", &schedules.ScheduleRequest{ScheduleID: active.ID}, &deleted))
	assert.True(t, deleted.Deleted)
	err = call(ctx, "GetOverview", &schedules.ScheduleRequest{ScheduleID: active.ID}, &overview)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestPartialScheduleSurfacesAsDataLoss(t *testing.T) {
	gdb := testutil.NewDB(t)
	fx := testutil.NewFixture(t, gdb)
	user := fx.User("user")
	sched := db.Schedule{OwnerID: user.ID, MealPlanID: 1, Title: "broken", StartDate: "2024-06-01", ItemCount: 4}
	require.NoError(t, gdb.Create(&sched).Error)

	appCtx, _ := testutil.NewAppContext(t, gdb, recommend.Noop{})
	conn := testutil.Dial(t, schedules.NewRegistrar(appCtx))
	ctx := testutil.AsUser(context.Background(), user.ID)

	var overview schedules.OverviewResponse
	err := conn.Invoke(ctx, "/"+schedules.ServiceName+"/GetOverview", &schedules.ScheduleRequest{ScheduleID: sched.ID}, &overview)
	assert.Equal(t, codes.DataLoss, status.Code(err))
}
