package recommend

import (
	"context"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// Breaker wraps a Recommender with a circuit breaker so a slow or failing
// provider stops being called for a while instead of delaying every detail read.
//
// Configuration:
//   - Opens after 5 consecutive failures.
//   - Counts reset every minute while closed.
//   - Half-open after 30s, allowing 1 probe request.
type Breaker struct {
	next Recommender
	cb   *gobreaker.CircuitBreaker[[]Recommendation]
}

func NewBreaker(next Recommender, log *slog.Logger) *Breaker {
	cb := gobreaker.NewCircuitBreaker[[]Recommendation](gobreaker.Settings{
		Name:        "recommender",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &Breaker{next: next, cb: cb}
}

func (b *Breaker) Recommendations(ctx context.Context, recipeID uint64) ([]Recommendation, error) {
	return b.cb.Execute(func() ([]Recommendation, error) {
		return b.next.Recommendations(ctx, recipeID)
	})
}

// State exposes the breaker state for diagnostics and tests.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
