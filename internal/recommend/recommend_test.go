package recommend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/mealplanner/internal/cache"
	"github.com/oggyb/mealplanner/internal/config"
	"github.com/oggyb/mealplanner/internal/recommend"
	"github.com/oggyb/mealplanner/internal/testutil"
)

type stubRecommender struct {
	calls atomic.Int32
	recs  []recommend.Recommendation
	err   error
}

func (s *stubRecommender) Recommendations(context.Context, uint64) ([]recommend.Recommendation, error) {
	s.calls.Add(1)
	return s.recs, s.err
}

func TestHTTPClient_PreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/42/related", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":9,"score":0.9},{"id":2},{"id":5,"score":0.1}]`))
	}))
	defer srv.Close()

	c := recommend.NewHTTPClient(srv.URL, time.Second)
	recs, err := c.Recommendations(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []uint64{9, 2, 5}, recommend.IDs(recs))
	require.NotNil(t, recs[0].Score)
	assert.InDelta(t, 0.9, *recs[0].Score, 1e-9)
	assert.Nil(t, recs[1].Score)
}

func TestHTTPClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/1/related":
			w.WriteHeader(http.StatusNotFound)
		case "/recipes/2/related":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	c := recommend.NewHTTPClient(srv.URL, time.Second)

	recs, err := c.Recommendations(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, recs)

	_, err = c.Recommendations(context.Background(), 2)
	assert.Error(t, err)

	_, err = c.Recommendations(context.Background(), 3)
	assert.Error(t, err)
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubRecommender{err: errors.New("provider down")}
	b := recommend.NewBreaker(stub, testutil.Logger())

	for i := 0; i < 5; i++ {
		_, err := b.Recommendations(context.Background(), 1)
		assert.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Recommendations(context.Background(), 1)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(5), stub.calls.Load())
}

func TestCached_HitsProviderOnce(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })
	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()

	stub := &stubRecommender{recs: []recommend.Recommendation{{ID: 3}, {ID: 1}}}
	c := recommend.NewCached(stub, cache.NewRedisCache(cfg), time.Minute, testutil.Logger())

	for i := 0; i < 3; i++ {
		recs, err := c.Recommendations(context.Background(), 8)
		require.NoError(t, err)
		assert.Equal(t, []uint64{3, 1}, recommend.IDs(recs))
	}
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })
	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()

	stub := &stubRecommender{err: errors.New("boom")}
	c := recommend.NewCached(stub, cache.NewRedisCache(cfg), time.Minute, testutil.Logger())

	_, err = c.Recommendations(context.Background(), 8)
	assert.Error(t, err)
	_, err = c.Recommendations(context.Background(), 8)
	assert.Error(t, err)
	assert.Equal(t, int32(2), stub.calls.Load())
}
