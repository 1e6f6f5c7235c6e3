package mealplans

import (
	"context"

	"google.golang.org/grpc"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/server"
)

const ServiceName = "mealplans.v1.MealPlanService"

type MealPlanServer interface {
	ListMealPlans(context.Context, *ListMealPlansRequest) (*ListMealPlansResponse, error)
	GetMealPlan(context.Context, *MealPlanRequest) (*MealPlanResponse, error)
	SaveMealPlan(context.Context, *MealPlanRequest) (*MealPlanResponse, error)
	LikeMealPlan(context.Context, *MealPlanRequest) (*EngagementResponse, error)
	UnlikeMealPlan(context.Context, *MealPlanRequest) (*EngagementResponse, error)
	BookmarkMealPlan(context.Context, *MealPlanRequest) (*EngagementResponse, error)
	UnbookmarkMealPlan(context.Context, *MealPlanRequest) (*EngagementResponse, error)
	ApplyMealPlan(context.Context, *ApplyMealPlanRequest) (*ApplyMealPlanResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MealPlanServer)(nil),
	Methods: []grpc.MethodDesc{
		server.Unary(ServiceName, "ListMealPlans", MealPlanServer.ListMealPlans),
		server.Unary(ServiceName, "GetMealPlan", MealPlanServer.GetMealPlan),
		server.Unary(ServiceName, "SaveMealPlan", MealPlanServer.SaveMealPlan),
		server.Unary(ServiceName, "LikeMealPlan", MealPlanServer.LikeMealPlan),
		server.Unary(ServiceName, "UnlikeMealPlan", MealPlanServer.UnlikeMealPlan),
		server.Unary(ServiceName, "BookmarkMealPlan", MealPlanServer.BookmarkMealPlan),
		server.Unary(ServiceName, "UnbookmarkMealPlan", MealPlanServer.UnbookmarkMealPlan),
		server.Unary(ServiceName, "ApplyMealPlan", MealPlanServer.ApplyMealPlan),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mealplans/v1/mealplans",
}

// Registrar ties the MealPlan service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&ServiceDesc, NewMealPlanService(r.appCtx))
}
