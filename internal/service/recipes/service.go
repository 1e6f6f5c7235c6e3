package recipes

import (
	"context"
	"strconv"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/engagement"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/filter"
	"github.com/oggyb/mealplanner/internal/readmodel"
	"github.com/oggyb/mealplanner/internal/repository"
	"github.com/oggyb/mealplanner/internal/server"
)

// Service implements the RecipeService gRPC API on top of the read-model
// builder and the engagement service.
type Service struct {
	appCtx     *app.AppContext
	builder    *readmodel.Builder
	engagement *engagement.Service
}

// NewRecipeService creates a new Recipe service with dependencies from AppContext.
func NewRecipeService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:     appCtx,
		builder:    readmodel.NewBuilder(appCtx),
		engagement: engagement.NewService(appCtx.DB, appCtx.Logger),
	}
}

// ListChefRecipes lists the caller's own recipes.
func (s *Service) ListChefRecipes(ctx context.Context, req *ListRecipesRequest) (*ListRecipesResponse, error) {
	callerID := server.CallerID(ctx)
	if callerID == 0 {
		return nil, svcErr.Map(svcErr.InvalidArgument("%s is required", server.UserIDHeader))
	}
	return s.list(ctx, filter.RoleChef, callerID, req)
}

// ListRecipes lists accepted recipes.
//
// Behavior:
//   - Anonymous callers get the list without is_liked/is_bookmarked set.
//   - Out-of-range pages are empty, never an error.
//
// Example:
//
//	svc.ListRecipes(ctx, &ListRecipesRequest{Params: filter.Params{"region": "0"}})
func (s *Service) ListRecipes(ctx context.Context, req *ListRecipesRequest) (*ListRecipesResponse, error) {
	return s.list(ctx, filter.RoleConsumer, server.CallerID(ctx), req)
}

func (s *Service) list(ctx context.Context, role filter.Role, callerID uint64, req *ListRecipesRequest) (*ListRecipesResponse, error) {
	s.appCtx.Logger.Debug("ListRecipes called", "role", role, "caller_id", callerID, "params", req.Params)

	page, err := s.builder.List(ctx, role, callerID, req.Params)
	if err != nil {
		s.appCtx.Logger.Error("list recipes failed", "err", err)
		return nil, svcErr.Map(err)
	}
	return &page, nil
}

// GetChefRecipe returns one of the caller's own recipes.
func (s *Service) GetChefRecipe(ctx context.Context, req *GetRecipeRequest) (*GetRecipeResponse, error) {
	callerID := server.CallerID(ctx)
	if callerID == 0 {
		return nil, svcErr.Map(svcErr.InvalidArgument("%s is required", server.UserIDHeader))
	}
	return s.detail(ctx, filter.RoleChef, callerID, req.RecipeID)
}

// GetRecipe returns an accepted recipe with its related list.
func (s *Service) GetRecipe(ctx context.Context, req *GetRecipeRequest) (*GetRecipeResponse, error) {
	return s.detail(ctx, filter.RoleConsumer, server.CallerID(ctx), req.RecipeID)
}

func (s *Service) detail(ctx context.Context, role filter.Role, callerID, recipeID uint64) (*GetRecipeResponse, error) {
	d, err := s.builder.Detail(ctx, role, callerID, recipeID)
	if err != nil {
		if !svcErr.IsNotFound(err) {
			s.appCtx.Logger.Error("recipe detail failed", "recipe_id", recipeID, "err", err)
		}
		return nil, svcErr.Map(err)
	}
	return &d, nil
}

// TopRecipes returns the leaderboard.
func (s *Service) TopRecipes(ctx context.Context, _ *TopRecipesRequest) (*TopRecipesResponse, error) {
	items, err := s.builder.Top(ctx, server.CallerID(ctx))
	if err != nil {
		s.appCtx.Logger.Error("top recipes failed", "err", err)
		return nil, svcErr.Map(err)
	}
	return &TopRecipesResponse{Items: items}, nil
}

func (s *Service) LikeRecipe(ctx context.Context, req *RecipeActionRequest) (*EngagementResponse, error) {
	return s.engage(ctx, req.RecipeID, s.engagement.Like)
}

func (s *Service) UnlikeRecipe(ctx context.Context, req *RecipeActionRequest) (*EngagementResponse, error) {
	return s.engage(ctx, req.RecipeID, s.engagement.Unlike)
}

func (s *Service) BookmarkRecipe(ctx context.Context, req *RecipeActionRequest) (*EngagementResponse, error) {
	return s.engage(ctx, req.RecipeID, s.engagement.Bookmark)
}

func (s *Service) UnbookmarkRecipe(ctx context.Context, req *RecipeActionRequest) (*EngagementResponse, error) {
	return s.engage(ctx, req.RecipeID, s.engagement.Unbookmark)
}

// CommentRecipe adds a comment and returns the refreshed counters.
func (s *Service) CommentRecipe(ctx context.Context, req *CommentRecipeRequest) (*EngagementResponse, error) {
	stats, err := s.engagement.Comment(ctx, engagement.Recipe, server.CallerID(ctx), req.RecipeID, req.Text)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &EngagementResponse{RecipeID: req.RecipeID, Stats: stats}, nil
}

// ListRecipeComments pages through visible comments, newest first.
func (s *Service) ListRecipeComments(ctx context.Context, req *ListCommentsRequest) (*ListCommentsResponse, error) {
	pg := filter.CompilePaging(filter.Params{
		filter.ParamPage:  strconv.Itoa(req.Page),
		filter.ParamLimit: strconv.Itoa(req.Limit),
	}, s.appCtx.Limits)

	page, err := s.engagement.Comments(ctx, engagement.Recipe, server.CallerID(ctx), req.RecipeID, pg.Page, pg.Limit)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &page, nil
}

type engageFn func(ctx context.Context, t repository.Target, userID, targetID uint64) (engagement.Stats, error)

// engage runs a like/bookmark write and drops the cached leaderboard, whose
// ranking depends on those counts.
func (s *Service) engage(ctx context.Context, recipeID uint64, fn engageFn) (*EngagementResponse, error) {
	stats, err := fn(ctx, engagement.Recipe, server.CallerID(ctx), recipeID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	s.builder.InvalidateTop(ctx)
	return &EngagementResponse{RecipeID: recipeID, Stats: stats}, nil
}
