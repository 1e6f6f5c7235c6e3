package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/mealplanner/internal/db"
)

// Target describes the edge tables of one engageable entity kind.
type Target struct {
	Name      string
	Table     string
	Column    string
	Likes     string
	Bookmarks string
	Comments  string

	newLike     func(userID, targetID uint64) any
	newBookmark func(userID, targetID uint64) any
	newComment  func(userID, targetID uint64, text string) any
	visible     func(q *gorm.DB, viewerID uint64) *gorm.DB
}

var RecipeTarget = Target{
	Name:      "recipe",
	Table:     "recipes",
	Column:    "recipe_id",
	Likes:     "like_recipes",
	Bookmarks: "bookmark_recipes",
	Comments:  "comment_recipes",
	newLike: func(u, t uint64) any {
		return &db.LikeRecipe{UserID: u, RecipeID: t}
	},
	newBookmark: func(u, t uint64) any {
		return &db.BookmarkRecipe{UserID: u, RecipeID: t}
	},
	newComment: func(u, t uint64, text string) any {
		return &db.CommentRecipe{UserID: u, RecipeID: t, Text: text}
	},
	visible: func(q *gorm.DB, viewerID uint64) *gorm.DB {
		return q.Where("(status = ? OR (owner_id = ? AND status <> ?))", db.RecipeAccepted, viewerID, db.RecipeBanned)
	},
}

var MealPlanTarget = Target{
	Name:      "meal plan",
	Table:     "meal_plans",
	Column:    "meal_plan_id",
	Likes:     "like_meal_plans",
	Bookmarks: "bookmark_meal_plans",
	Comments:  "comment_meal_plans",
	newLike: func(u, t uint64) any {
		return &db.LikeMealPlan{UserID: u, MealPlanID: t}
	},
	newBookmark: func(u, t uint64) any {
		return &db.BookmarkMealPlan{UserID: u, MealPlanID: t}
	},
	newComment: func(u, t uint64, text string) any {
		return &db.CommentMealPlan{UserID: u, MealPlanID: t, Text: text}
	},
	visible: func(q *gorm.DB, viewerID uint64) *gorm.DB {
		return q.Where("(is_public = ? OR owner_id = ?)", true, viewerID)
	},
}

// Edge is one engagement row referencing a target.
type Edge struct {
	TargetID uint64
	UserID   uint64
}

// Comment is a visible comment with its author's name.
type Comment struct {
	ID        uint64    `json:"id"`
	TargetID  uint64    `json:"target_id"`
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// EngagementRepository reads and writes like/bookmark/comment edges for any Target.
type EngagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(database *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: database}
}

// Visible reports whether targetID exists and the viewer may engage with it.
func (r *EngagementRepository) Visible(ctx context.Context, t Target, viewerID, targetID uint64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Table(t.Table).Where("id = ?", targetID)
	if err := t.visible(q, viewerID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s visibility: %w", t.Name, err)
	}
	return count > 0, nil
}

// Like inserts or refreshes the (user, target) like edge.
//
// Behavior:
//   - Single INSERT ... ON CONFLICT statement, so concurrent duplicate
//     requests converge to exactly one row.
//   - Composite PK (user_id, target column) is the conflict target.
//
// Example:
//
//	repo.Like(ctx, repository.RecipeTarget, 1, 42) // user 1 likes recipe 42
func (r *EngagementRepository) Like(ctx context.Context, t Target, userID, targetID uint64) error {
	return r.upsert(ctx, t, t.newLike(userID, targetID))
}

// Bookmark inserts or refreshes the (user, target) bookmark edge.
func (r *EngagementRepository) Bookmark(ctx context.Context, t Target, userID, targetID uint64) error {
	return r.upsert(ctx, t, t.newBookmark(userID, targetID))
}

// Unlike removes the like edge if present. Removing a missing edge is not an error.
func (r *EngagementRepository) Unlike(ctx context.Context, t Target, userID, targetID uint64) error {
	return r.remove(ctx, t, t.newLike(0, 0), userID, targetID)
}

// Unbookmark removes the bookmark edge if present.
func (r *EngagementRepository) Unbookmark(ctx context.Context, t Target, userID, targetID uint64) error {
	return r.remove(ctx, t, t.newBookmark(0, 0), userID, targetID)
}

func (r *EngagementRepository) upsert(ctx context.Context, t Target, edge any) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: t.Column}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).
		Create(edge).Error
}

func (r *EngagementRepository) remove(ctx context.Context, t Target, model any, userID, targetID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND "+t.Column+" = ?", userID, targetID).
		Delete(model).Error
}

// AddComment stores a new, visible comment.
func (r *EngagementRepository) AddComment(ctx context.Context, t Target, userID, targetID uint64, text string) error {
	return r.db.WithContext(ctx).Create(t.newComment(userID, targetID, text)).Error
}

// Likes returns every like edge referencing targetIDs in one query.
func (r *EngagementRepository) Likes(ctx context.Context, t Target, targetIDs []uint64) ([]Edge, error) {
	return r.edges(ctx, t.Likes, t.Column, targetIDs, false)
}

// Bookmarks returns every bookmark edge referencing targetIDs in one query.
func (r *EngagementRepository) Bookmarks(ctx context.Context, t Target, targetIDs []uint64) ([]Edge, error) {
	return r.edges(ctx, t.Bookmarks, t.Column, targetIDs, false)
}

// CommentEdges returns every non-banned comment edge referencing targetIDs.
func (r *EngagementRepository) CommentEdges(ctx context.Context, t Target, targetIDs []uint64) ([]Edge, error) {
	return r.edges(ctx, t.Comments, t.Column, targetIDs, true)
}

func (r *EngagementRepository) edges(
	ctx context.Context,
	table, column string,
	targetIDs []uint64,
	visibleOnly bool,
) ([]Edge, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	var edges []Edge
	q := r.db.WithContext(ctx).
		Table(table).
		Select(column + " AS target_id, user_id").
		Where(column+" IN ?", targetIDs)
	if visibleOnly {
		q = q.Where("is_banned = ?", false)
	}
	if err := q.Scan(&edges).Error; err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	return edges, nil
}

// Comments returns one page of visible comments on a target, newest first,
// plus the total number of visible comments.
func (r *EngagementRepository) Comments(
	ctx context.Context,
	t Target,
	targetID uint64,
	offset, limit int,
) ([]Comment, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Table(t.Comments + " c").
			Where("c."+t.Column+" = ? AND c.is_banned = ?", targetID, false)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	var comments []Comment
	err := base().
		Select("c.id AS id, c." + t.Column + " AS target_id, c.user_id AS user_id, u.username AS username, c.text AS text, c.created_at AS created_at").
		Joins("LEFT JOIN users u ON u.id = c.user_id").
		Order("c.created_at DESC, c.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("load comments: %w", err)
	}
	return comments, total, nil
}
