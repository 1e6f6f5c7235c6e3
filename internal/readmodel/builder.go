package readmodel

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/app"
	"github.com/oggyb/mealplanner/internal/cache"
	"github.com/oggyb/mealplanner/internal/db"
	"github.com/oggyb/mealplanner/internal/engagement"
	svcErr "github.com/oggyb/mealplanner/internal/errors"
	"github.com/oggyb/mealplanner/internal/filter"
	"github.com/oggyb/mealplanner/internal/recommend"
	"github.com/oggyb/mealplanner/internal/repository"
	"github.com/oggyb/mealplanner/internal/utils/pagination"
)

// TopN is the size of the leaderboard.
const TopN = 3

// Builder composes filter compilation, the recipe queries and the
// engagement overlay into recipe pages.
type Builder struct {
	recipes     *repository.RecipeRepository
	engagement  *engagement.Service
	recommender recommend.Recommender
	cache       *cache.RedisCache
	limits      filter.Limits
	topTTL      time.Duration
	log         *slog.Logger
}

// NewBuilder wires a Builder from the shared AppContext. A nil RedisCache
// disables leaderboard caching.
func NewBuilder(appCtx *app.AppContext) *Builder {
	return &Builder{
		recipes:     repository.NewRecipeRepository(appCtx.DB),
		engagement:  engagement.NewService(appCtx.DB, appCtx.Logger),
		recommender: appCtx.Recommender,
		cache:       appCtx.RedisCache,
		limits:      appCtx.Limits,
		topTTL:      appCtx.TopTTL,
		log:         appCtx.Logger,
	}
}

// List returns one page of recipes for role.
//
// Behavior:
//   - Chef lists are the caller's own recipes, banned ones excluded.
//   - Consumer lists are accepted recipes and carry the owner profile.
//   - TotalPages is computed from the unpaginated match count.
//   - No match is an empty page, never an error.
//
// Example:
//
//	b.List(ctx, filter.RoleConsumer, 7, filter.Params{"difficult_level": "0"})
func (b *Builder) List(
	ctx context.Context,
	role filter.Role,
	callerID uint64,
	params filter.Params,
) (pagination.Page[RecipeView], error) {
	pred, pg := filter.Compile(role, callerID, params, b.limits)
	withOwner := role == filter.RoleConsumer

	count, err := b.recipes.Count(ctx, pred)
	if err != nil {
		return pagination.Page[RecipeView]{}, err
	}
	if count == 0 || pg.Offset() >= int(count) {
		return pagination.New([]RecipeView{}, count, pg.Page, pg.Limit), nil
	}

	rows, err := b.recipes.Page(ctx, pred, pg, withOwner)
	if err != nil {
		return pagination.Page[RecipeView]{}, err
	}
	views, err := b.overlay(ctx, rows, callerID, withOwner)
	if err != nil {
		return pagination.Page[RecipeView]{}, err
	}

	b.log.Debug("recipe page built", "role", role, "caller_id", callerID, "count", count, "page", pg.Page, "items", len(views))
	return pagination.New(views, count, pg.Page, pg.Limit), nil
}

// Detail returns one recipe visible to role and bumps its view counter.
// Both roles get the related list in recommender order; related entries are
// always accepted recipes, even on a chef's own pending recipe.
func (b *Builder) Detail(ctx context.Context, role filter.Role, callerID, recipeID uint64) (Detail, error) {
	pred, _ := filter.Compile(role, callerID, filter.Params{}, b.limits)
	pred.Album = filter.AnyAlbum
	withOwner := role == filter.RoleConsumer

	recipe, err := b.recipes.FindScoped(ctx, pred, recipeID, withOwner)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Detail{}, svcErr.NotFound("recipe %d not found", recipeID)
	} else if err != nil {
		return Detail{}, err
	}

	if err := b.recipes.IncrementView(ctx, recipe.ID); err != nil {
		return Detail{}, err
	}
	recipe.View++

	views, err := b.overlay(ctx, []db.Recipe{*recipe}, callerID, withOwner)
	if err != nil {
		return Detail{}, err
	}

	return Detail{RecipeView: views[0], Body: recipe.Body, Related: b.related(ctx, recipe.ID)}, nil
}

// Top returns the TopN accepted standalone recipes by likes, then bookmarks,
// then recency. The ranked ids are cached; the viewer overlay never is.
// Cached ids are re-checked against the consumer scope, so a recipe banned
// after caching drops out immediately.
func (b *Builder) Top(ctx context.Context, viewerID uint64) ([]RecipeView, error) {
	ids, err := b.topIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []RecipeView{}, nil
	}

	pred, _ := filter.Compile(filter.RoleConsumer, 0, filter.Params{}, b.limits)
	rows, err := b.recipes.ByIDs(ctx, pred, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]db.Recipe, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	return b.overlay(ctx, orderByIDs(ids, byID), viewerID, true)
}

// InvalidateTop drops the cached leaderboard ranking. Cache errors are
// logged only; the entry still expires after its TTL.
func (b *Builder) InvalidateTop(ctx context.Context) {
	if b.cache == nil {
		return
	}
	if err := b.cache.Del(ctx, b.cache.KeyForTopRecipes()); err != nil {
		b.log.Warn("top recipes cache invalidation failed", "err", err)
	}
}

func (b *Builder) topIDs(ctx context.Context) ([]uint64, error) {
	if b.cache != nil {
		if ids, ok, err := b.cache.GetIDs(ctx, b.cache.KeyForTopRecipes()); err == nil && ok {
			return ids, nil
		} else if err != nil {
			b.log.Warn("top recipes cache read failed", "err", err)
		}
	}

	ranked, err := b.recipes.TopRanked(ctx, TopN)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}

	if b.cache != nil {
		if err := b.cache.SetIDs(ctx, b.cache.KeyForTopRecipes(), ids, b.topTTL); err != nil {
			b.log.Warn("top recipes cache write failed", "err", err)
		}
	}
	return ids, nil
}

// related resolves recommender ids to projections, keeping recommender order.
// Provider failures degrade to an empty list.
func (b *Builder) related(ctx context.Context, recipeID uint64) []RelatedRecipe {
	recs, err := b.recommender.Recommendations(ctx, recipeID)
	if err != nil {
		b.log.Warn("recommender unavailable", "recipe_id", recipeID, "err", err)
		return []RelatedRecipe{}
	}
	ids := recommend.IDs(recs)
	if len(ids) == 0 {
		return []RelatedRecipe{}
	}

	rows, err := b.recipes.Lightweight(ctx, ids)
	if err != nil {
		b.log.Warn("related lookup failed", "recipe_id", recipeID, "err", err)
		return []RelatedRecipe{}
	}
	byID := make(map[uint64]RelatedRecipe, len(rows))
	for _, r := range rows {
		byID[r.ID] = relatedView(r)
	}
	delete(byID, recipeID)
	return orderByIDs(ids, byID)
}

func (b *Builder) overlay(ctx context.Context, rows []db.Recipe, viewerID uint64, withOwner bool) ([]RecipeView, error) {
	ids := make([]uint64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	stats, err := b.engagement.Join(ctx, engagement.Recipe, ids, viewerID)
	if err != nil {
		return nil, err
	}

	views := make([]RecipeView, len(rows))
	for i, r := range rows {
		views[i] = recipeView(r, withOwner, stats[r.ID])
	}
	return views, nil
}
