package filter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/mealplanner/internal/db"
)

func TestCompile_Defaults(t *testing.T) {
	_, pg := Compile(RoleConsumer, 0, Params{}, DefaultLimits)
	assert.Equal(t, Paging{Page: 1, Limit: 10, Sort: Desc}, pg)

	_, pg = Compile(RoleConsumer, 0, Params{"page": "0", "limit": "NaN", "sort": "sideways"}, DefaultLimits)
	assert.Equal(t, Paging{Page: 1, Limit: 10, Sort: Desc}, pg)

	_, pg = Compile(RoleConsumer, 0, Params{"page": "3", "limit": "500", "sort": "ASC"}, DefaultLimits)
	assert.Equal(t, Paging{Page: 3, Limit: 100, Sort: Asc}, pg)
	assert.Equal(t, 200, pg.Offset())
}

func TestCompile_RoleScoping(t *testing.T) {
	chef, _ := Compile(RoleChef, 7, Params{"status": "1"}, DefaultLimits)
	owner, ok := chef.OwnerID.Get()
	assert.True(t, ok)
	assert.Equal(t, uint64(7), owner)
	assert.True(t, chef.ExcludeBanned)
	assert.Equal(t, Some(db.RecipeAccepted), chef.Status)

	// banned cannot be requested back by a chef
	chef, _ = Compile(RoleChef, 7, Params{"status": "3"}, DefaultLimits)
	assert.False(t, chef.Status.IsSome())
	assert.True(t, chef.ExcludeBanned)

	consumer, _ := Compile(RoleConsumer, 7, Params{"status": "0"}, DefaultLimits)
	assert.False(t, consumer.OwnerID.IsSome())
	assert.Equal(t, Some(db.RecipeAccepted), consumer.Status)
}

func TestCompile_ZeroIsPresent(t *testing.T) {
	p, _ := Compile(RoleConsumer, 0, Params{"difficult_level": "0", "region": "0", "interval_time": "0"}, DefaultLimits)
	assert.Equal(t, Some(db.DifficultyEasy), p.Difficulty)
	assert.Equal(t, Some(0), p.Region)
	assert.Equal(t, Some(Buckets[0]), p.Time)
}

func TestCompile_UnsetAndMalformedAreAbsent(t *testing.T) {
	p, _ := Compile(RoleConsumer, 0, Params{
		"difficult_level":    "NaN",
		"region":             "all",
		"category_recipe_id": "-1",
		"processing_food":    "all",
		"interval_time":      "9",
		"search":             "   ",
	}, DefaultLimits)
	assert.False(t, p.Difficulty.IsSome())
	assert.False(t, p.Region.IsSome())
	assert.False(t, p.CategoryID.IsSome())
	assert.False(t, p.ProcessingFood.IsSome())
	assert.False(t, p.Time.IsSome())
	assert.False(t, p.Search.IsSome())

	p, _ = Compile(RoleConsumer, 0, Params{"difficult_level": "1.5", "region": "abc"}, DefaultLimits)
	assert.False(t, p.Difficulty.IsSome())
	assert.False(t, p.Region.IsSome())
}

func TestCompile_Facets(t *testing.T) {
	p, _ := Compile(RoleConsumer, 0, Params{
		"category_recipe_id": "4",
		"processing_food":    "fry",
		"search":             "  Chicken   Soup ",
		"interval_time":      "4",
		"type":               "album",
	}, DefaultLimits)
	assert.Equal(t, Some(uint64(4)), p.CategoryID)
	assert.Equal(t, Some("fry"), p.ProcessingFood)
	assert.Equal(t, Some("chicken soup"), p.Search)
	bucket, _ := p.Time.Get()
	assert.Equal(t, 120, bucket.Min)
	assert.False(t, bucket.Max.IsSome())
	assert.Equal(t, AlbumOnly, p.Album)

	p, _ = Compile(RoleConsumer, 0, Params{"type": "all"}, DefaultLimits)
	assert.Equal(t, AnyAlbum, p.Album)
	p, _ = Compile(RoleConsumer, 0, Params{}, DefaultLimits)
	assert.Equal(t, Standalone, p.Album)
}

func TestBuckets_ShareEndpoints(t *testing.T) {
	for i := 1; i < len(Buckets); i++ {
		prevMax, ok := Buckets[i-1].Max.Get()
		assert.True(t, ok)
		assert.Equal(t, prevMax, Buckets[i].Min)
	}
}

func TestOpt(t *testing.T) {
	assert.Equal(t, 5, None[int]().Or(5))
	assert.Equal(t, 0, Some(0).Or(5))
}

func TestCompile_SearchTruncation(t *testing.T) {
	long := "a" + strings.Repeat("é", 60)
	p, _ := Compile(RoleConsumer, 0, Params{"search": long}, DefaultLimits)
	term, ok := p.Search.Get()
	require.True(t, ok)
	assert.True(t, utf8.ValidString(term))
	assert.LessOrEqual(t, len(term), 100)
	assert.Equal(t, "a"+strings.Repeat("é", 49), term)

	p, _ = Compile(RoleConsumer, 0, Params{"search": strings.Repeat("x", 150)}, DefaultLimits)
	term, _ = p.Search.Get()
	assert.Len(t, term, 100)
}
