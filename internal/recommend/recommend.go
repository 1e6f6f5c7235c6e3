// Package recommend is the client side of the external "related recipes"
// provider. The engine treats results as opaque and order-significant.
package recommend

import "context"

// Recommendation is one related recipe, most relevant first.
type Recommendation struct {
	ID    uint64   `json:"id"`
	Score *float64 `json:"score,omitempty"`
}

// Recommender returns recipes related to recipeID ordered by relevance.
type Recommender interface {
	Recommendations(ctx context.Context, recipeID uint64) ([]Recommendation, error)
}

// Noop never recommends anything. Used when no provider is configured.
type Noop struct{}

func (Noop) Recommendations(context.Context, uint64) ([]Recommendation, error) {
	return nil, nil
}

// IDs extracts the ids of recs, keeping their order.
func IDs(recs []Recommendation) []uint64 {
	ids := make([]uint64, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return ids
}
