package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/oggyb/mealplanner/internal/db"
	"github.com/oggyb/mealplanner/internal/filter"
)

// RecipeRepository provides data access methods for the Recipe model.
// Every list/detail query goes through the same compiled filter.Predicate.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new repository bound to the given DB connection.
func NewRecipeRepository(database *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: database}
}

// RankedRecipe is one row of the engagement leaderboard.
type RankedRecipe struct {
	ID        uint64
	Likes     int64
	Bookmarks int64
}

// Count returns how many recipes match p, ignoring pagination.
func (r *RecipeRepository) Count(ctx context.Context, p filter.Predicate) (int64, error) {
	var count int64
	q := r.scoped(r.db.WithContext(ctx).Model(&db.Recipe{}), p)
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}

// Page returns one page of recipes matching p.
//
// Behavior:
//   - Ordered by created_at then id, in pg.Sort direction.
//   - Category is always joined; owner profile only when withOwner is set,
//     and then without the password hash.
//
// Example:
//
//	repo.Page(ctx, pred, filter.Paging{Page: 2, Limit: 10, Sort: filter.Desc}, true)
func (r *RecipeRepository) Page(
	ctx context.Context,
	p filter.Predicate,
	pg filter.Paging,
	withOwner bool,
) ([]db.Recipe, error) {
	var recipes []db.Recipe

	dir := "DESC"
	if pg.Sort == filter.Asc {
		dir = "ASC"
	}

	q := r.scoped(r.db.WithContext(ctx).Model(&db.Recipe{}), p).
		Preload("Category").
		Order(fmt.Sprintf("recipes.created_at %s, recipes.id %s", dir, dir)).
		Offset(pg.Offset()).
		Limit(pg.Limit)
	if withOwner {
		q = q.Preload("Owner", ownerProjection)
	}

	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("page recipes: %w", err)
	}
	return recipes, nil
}

// FindScoped loads a single recipe only if it satisfies p.
// Returns gorm.ErrRecordNotFound when it does not exist or is out of scope.
func (r *RecipeRepository) FindScoped(
	ctx context.Context,
	p filter.Predicate,
	id uint64,
	withOwner bool,
) (*db.Recipe, error) {
	var recipe db.Recipe
	q := r.scoped(r.db.WithContext(ctx).Model(&db.Recipe{}), p).
		Preload("Category").
		Where("recipes.id = ?", id)
	if withOwner {
		q = q.Preload("Owner", ownerProjection)
	}
	if err := q.First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// IncrementView bumps the view counter by exactly one.
func (r *RecipeRepository) IncrementView(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&db.Recipe{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// Lightweight returns the projection used for related lists. Only accepted
// recipes are returned; order is unspecified, callers re-order by id.
func (r *RecipeRepository) Lightweight(ctx context.Context, ids []uint64) ([]db.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recipes []db.Recipe
	err := r.db.WithContext(ctx).
		Select("id", "title", "image_path", "image_name", "description", "time", "difficulty", "created_at").
		Where("id IN ? AND status = ?", ids, db.RecipeAccepted).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("load related recipes: %w", err)
	}
	return recipes, nil
}

// ByIDs loads the recipes among ids that still satisfy p, with category and
// owner profile. Order is unspecified.
func (r *RecipeRepository) ByIDs(ctx context.Context, p filter.Predicate, ids []uint64) ([]db.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recipes []db.Recipe
	err := r.scoped(r.db.WithContext(ctx).Model(&db.Recipe{}), p).
		Preload("Category").
		Preload("Owner", ownerProjection).
		Where("recipes.id IN ?", ids).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("load recipes by id: %w", err)
	}
	return recipes, nil
}

// Nutrition loads title and nutrition of the given recipes keyed by id,
// regardless of status. Used to snapshot meal plans.
func (r *RecipeRepository) Nutrition(ctx context.Context, ids []uint64) (map[uint64]db.Recipe, error) {
	out := make(map[uint64]db.Recipe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var recipes []db.Recipe
	err := r.db.WithContext(ctx).
		Select("id", "title", "energy", "protein", "fat", "carbohydrate").
		Where("id IN ?", ids).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("load recipe nutrition: %w", err)
	}
	for _, rc := range recipes {
		out[rc.ID] = rc
	}
	return out, nil
}

// TopRanked returns the n accepted standalone recipes with most likes, ties
// broken by bookmarks and then recency.
func (r *RecipeRepository) TopRanked(ctx context.Context, n int) ([]RankedRecipe, error) {
	var rows []RankedRecipe
	err := r.db.WithContext(ctx).
		Table("recipes").
		Select("recipes.id AS id, COALESCE(l.cnt, 0) AS likes, COALESCE(b.cnt, 0) AS bookmarks").
		Joins("LEFT JOIN (SELECT recipe_id, COUNT(*) AS cnt FROM like_recipes GROUP BY recipe_id) l ON l.recipe_id = recipes.id").
		Joins("LEFT JOIN (SELECT recipe_id, COUNT(*) AS cnt FROM bookmark_recipes GROUP BY recipe_id) b ON b.recipe_id = recipes.id").
		Where("recipes.status = ? AND recipes.album_id IS NULL", db.RecipeAccepted).
		Order("likes DESC, bookmarks DESC, recipes.created_at DESC, recipes.id DESC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("rank recipes: %w", err)
	}
	return rows, nil
}

// scoped applies every present facet of p to q.
func (r *RecipeRepository) scoped(q *gorm.DB, p filter.Predicate) *gorm.DB {
	if id, ok := p.OwnerID.Get(); ok {
		q = q.Where("recipes.owner_id = ?", id)
	}
	if st, ok := p.Status.Get(); ok {
		q = q.Where("recipes.status = ?", st)
	}
	if p.ExcludeBanned {
		q = q.Where("recipes.status <> ?", db.RecipeBanned)
	}
	if term, ok := p.Search.Get(); ok {
		q = r.search(q, term)
	}
	if id, ok := p.CategoryID.Get(); ok {
		q = q.Where("recipes.category_id = ?", id)
	}
	if d, ok := p.Difficulty.Get(); ok {
		q = q.Where("recipes.difficulty = ?", d)
	}
	if reg, ok := p.Region.Get(); ok {
		q = q.Where("recipes.region = ?", reg)
	}
	if pf, ok := p.ProcessingFood.Get(); ok {
		q = q.Where("recipes.processing_food = ?", pf)
	}
	if rng, ok := p.Time.Get(); ok {
		q = q.Where("recipes.time >= ?", rng.Min)
		if hi, ok := rng.Max.Get(); ok {
			q = q.Where("recipes.time <= ?", hi)
		}
	}
	switch p.Album {
	case filter.Standalone:
		q = q.Where("recipes.album_id IS NULL")
	case filter.AlbumOnly:
		q = q.Where("recipes.album_id IS NOT NULL")
	}
	return q
}

// search matches the pre-indexed search_text column: FULLTEXT on MySQL,
// substring match on the lowercased column elsewhere.
func (r *RecipeRepository) search(q *gorm.DB, term string) *gorm.DB {
	if r.db.Dialector.Name() == "mysql" {
		return q.Where("MATCH(recipes.search_text) AGAINST (? IN NATURAL LANGUAGE MODE)", term)
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return q.Where(`recipes.search_text LIKE ? ESCAPE '\'`, "%"+escaped+"%")
}

func ownerProjection(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "username", "avatar")
}
