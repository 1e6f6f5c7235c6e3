package recipes

import (
	"context"

	"google.golang.org/grpc"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/server"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "recipes.v1.RecipeService"

// RecipeServer is the handler interface of RecipeService.
type RecipeServer interface {
	ListChefRecipes(context.Context, *ListRecipesRequest) (*ListRecipesResponse, error)
	ListRecipes(context.Context, *ListRecipesRequest) (*ListRecipesResponse, error)
	GetChefRecipe(context.Context, *GetRecipeRequest) (*GetRecipeResponse, error)
	GetRecipe(context.Context, *GetRecipeRequest) (*GetRecipeResponse, error)
	TopRecipes(context.Context, *TopRecipesRequest) (*TopRecipesResponse, error)
	LikeRecipe(context.Context, *RecipeActionRequest) (*EngagementResponse, error)
	UnlikeRecipe(context.Context, *RecipeActionRequest) (*EngagementResponse, error)
	BookmarkRecipe(context.Context, *RecipeActionRequest) (*EngagementResponse, error)
	UnbookmarkRecipe(context.Context, *RecipeActionRequest) (*EngagementResponse, error)
	CommentRecipe(context.Context, *CommentRecipeRequest) (*EngagementResponse, error)
	ListRecipeComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error)
}

// ServiceDesc describes RecipeService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecipeServer)(nil),
	Methods: []grpc.MethodDesc{
		server.Unary(ServiceName, "ListChefRecipes", RecipeServer.ListChefRecipes),
		server.Unary(ServiceName, "ListRecipes", RecipeServer.ListRecipes),
		server.Unary(ServiceName, "GetChefRecipe", RecipeServer.GetChefRecipe),
		server.Unary(ServiceName, "GetRecipe", RecipeServer.GetRecipe),
		server.Unary(ServiceName, "TopRecipes", RecipeServer.TopRecipes),
		server.Unary(ServiceName, "LikeRecipe", RecipeServer.LikeRecipe),
		server.Unary(ServiceName, "UnlikeRecipe", RecipeServer.UnlikeRecipe),
		server.Unary(ServiceName, "BookmarkRecipe", RecipeServer.BookmarkRecipe),
		server.Unary(ServiceName, "UnbookmarkRecipe", RecipeServer.UnbookmarkRecipe),
		server.Unary(ServiceName, "CommentRecipe", RecipeServer.CommentRecipe),
		server.Unary(ServiceName, "ListRecipeComments", RecipeServer.ListRecipeComments),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recipes/v1/recipes",
}

// Registrar ties the Recipe service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Recipe service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Recipe service implementation to the gRPC server
func (r *Registrar) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&ServiceDesc, NewRecipeService(r.appCtx))
}
