package schedules

import (
	"context"

	"google.golang.org/grpc"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/server"
)

const ServiceName = "schedules.v1.ScheduleService"

type ScheduleServer interface {
	ListSchedules(context.Context, *ListSchedulesRequest) (*ListSchedulesResponse, error)
	GetActiveSchedule(context.Context, *ActiveScheduleRequest) (*ScheduleResponse, error)
	GetOverview(context.Context, *ScheduleRequest) (*OverviewResponse, error)
	GetMealsByDate(context.Context, *MealsByDateRequest) (*MealsByDateResponse, error)
	GetDays(context.Context, *ScheduleRequest) (*DaysResponse, error)
	CompleteMealItem(context.Context, *MealItemRequest) (*MealItemResponse, error)
	SkipMealItem(context.Context, *MealItemRequest) (*MealItemResponse, error)
	UpdateScheduleStatus(context.Context, *UpdateStatusRequest) (*ScheduleResponse, error)
	DeleteSchedule(context.Context, *ScheduleRequest) (*DeleteScheduleResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScheduleServer)(nil),
	Methods: []grpc.MethodDesc{
		server.Unary(ServiceName, "ListSchedules", ScheduleServer.ListSchedules),
		server.Unary(ServiceName, "GetActiveSchedule", ScheduleServer.GetActiveSchedule),
		server.Unary(ServiceName, "GetOverview", ScheduleServer.GetOverview),
		server.Unary(ServiceName, "GetMealsByDate", ScheduleServer.GetMealsByDate),
		server.Unary(ServiceName, "GetDays", ScheduleServer.GetDays),
		server.Unary(ServiceName, "CompleteMealItem", ScheduleServer.CompleteMealItem),
		server.Unary(ServiceName, "SkipMealItem", ScheduleServer.SkipMealItem),
		server.Unary(ServiceName, "UpdateScheduleStatus", ScheduleServer.UpdateScheduleStatus),
		server.Unary(ServiceName, "DeleteSchedule", ScheduleServer.DeleteSchedule),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "schedules/v1/schedules",
}

// Registrar ties the Schedule service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&ServiceDesc, NewScheduleService(r.appCtx))
}
