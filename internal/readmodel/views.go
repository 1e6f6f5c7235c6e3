// Package readmodel assembles paginated, engagement-annotated views of
// recipes and meal plans.
package readmodel

import (
	"time"

	"github.com/oggyb/mealplanner/internal/db"
	"github.com/oggyb/mealplanner/internal/engagement"
)

type CategoryView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// OwnerView is the public part of a user profile.
type OwnerView struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type Nutrition struct {
	Energy       float64 `json:"energy"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Carbohydrate float64 `json:"carbohydrate"`
}

// RecipeView is a recipe row with its category, optional owner profile and
// engagement overlay.
type RecipeView struct {
	ID             uint64          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ImagePath      string          `json:"image_path"`
	ImageName      string          `json:"image_name"`
	VideoURL       string          `json:"video_url,omitempty"`
	Time           int             `json:"time"`
	Difficulty     db.Difficulty   `json:"difficult_level"`
	Region         int             `json:"region"`
	ProcessingFood string          `json:"processing_food"`
	Status         db.RecipeStatus `json:"status"`
	View           int64           `json:"view"`
	Ingredients    []db.Ingredient `json:"ingredients"`
	Nutrition      Nutrition       `json:"nutrition"`
	Category       CategoryView    `json:"category"`
	Owner          *OwnerView      `json:"owner,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	engagement.Stats
}

// RelatedRecipe is the lightweight projection used in detail pages.
type RelatedRecipe struct {
	ID          uint64        `json:"id"`
	Title       string        `json:"title"`
	ImagePath   string        `json:"image_path"`
	ImageName   string        `json:"image_name"`
	Description string        `json:"description"`
	Time        int           `json:"time"`
	Difficulty  db.Difficulty `json:"difficult_level"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Detail is a single recipe with its body and, for consumers, the related list.
type Detail struct {
	RecipeView
	Body    string          `json:"body"`
	Related []RelatedRecipe `json:"related"`
}

func recipeView(r db.Recipe, withOwner bool, stats engagement.Stats) RecipeView {
	v := RecipeView{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		ImagePath:      r.ImagePath,
		ImageName:      r.ImageName,
		VideoURL:       r.VideoURL,
		Time:           r.Time,
		Difficulty:     r.Difficulty,
		Region:         r.Region,
		ProcessingFood: r.ProcessingFood,
		Status:         r.Status,
		View:           r.View,
		Ingredients:    r.Ingredients,
		Nutrition: Nutrition{
			Energy:       r.Energy,
			Protein:      r.Protein,
			Fat:          r.Fat,
			Carbohydrate: r.Carbohydrate,
		},
		Category:  CategoryView{ID: r.Category.ID, Name: r.Category.Name},
		CreatedAt: r.CreatedAt,
		Stats:     stats,
	}
	if v.Ingredients == nil {
		v.Ingredients = []db.Ingredient{}
	}
	if withOwner {
		v.Owner = &OwnerView{ID: r.Owner.ID, Username: r.Owner.Username, Avatar: r.Owner.Avatar}
	}
	return v
}

func relatedView(r db.Recipe) RelatedRecipe {
	return RelatedRecipe{
		ID:          r.ID,
		Title:       r.Title,
		ImagePath:   r.ImagePath,
		ImageName:   r.ImageName,
		Description: r.Description,
		Time:        r.Time,
		Difficulty:  r.Difficulty,
		CreatedAt:   r.CreatedAt,
	}
}

// orderByIDs returns the rows of byID in the order of ids, skipping ids
// without a row and repeated ids.
func orderByIDs[T any](ids []uint64, byID map[uint64]T) []T {
	out := make([]T, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		if v, ok := byID[id]; ok {
			seen[id] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
