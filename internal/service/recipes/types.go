package recipes

import (
	"github.com/oggyb/mealplanner/internal/engagement"
	"github.com/oggyb/mealplanner/internal/filter"
	"github.com/oggyb/mealplanner/internal/readmodel"
	"github.com/oggyb/mealplanner/internal/repository"
	"github.com/oggyb/mealplanner/internal/utils/pagination"
)

// ListRecipesRequest carries the raw facet filter bag. Values may be strings
// or numbers, e.g. {"difficult_level": 0, "page": "2", "sort": "asc"}.
type ListRecipesRequest struct {
	Params filter.Params `json:"params"`
}

type ListRecipesResponse = pagination.Page[readmodel.RecipeView]

type GetRecipeRequest struct {
	RecipeID uint64 `json:"recipe_id"`
}

type GetRecipeResponse = readmodel.Detail

type TopRecipesRequest struct{}

type TopRecipesResponse struct {
	Items []readmodel.RecipeView `json:"items"`
}

type RecipeActionRequest struct {
	RecipeID uint64 `json:"recipe_id"`
}

type EngagementResponse struct {
	RecipeID uint64 `json:"recipe_id"`
	engagement.Stats
}

type CommentRecipeRequest struct {
	RecipeID uint64 `json:"recipe_id"`
	Text     string `json:"text"`
}

type ListCommentsRequest struct {
	RecipeID uint64 `json:"recipe_id"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

type ListCommentsResponse = pagination.Page[repository.Comment]
