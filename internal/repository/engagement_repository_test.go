package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/mealplanner/internal/db"
	"github.com/oggyb/mealplanner/internal/repository"
	"github.com/oggyb/mealplanner/internal/testutil"
)

func TestLikeUpsertKeepsOneEdge(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	fx := testutil.NewFixture(t, gdb)
	u := fx.User("u")
	r := fx.Recipe(db.Recipe{OwnerID: u.ID, CategoryID: fx.Category("c").ID, Status: db.RecipeAccepted})
	repo := repository.NewEngagementRepository(gdb)

	for range 3 {
		require.NoError(t, repo.Like(ctx, repository.RecipeTarget, u.ID, r.ID))
	}
	var n int64
	require.NoError(t, gdb.Model(&db.LikeRecipe{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	edges, err := repo.Likes(ctx, repository.RecipeTarget, []uint64{r.ID})
	require.NoError(t, err)
	assert.Equal(t, []repository.Edge{{TargetID: r.ID, UserID: u.ID}}, edges)

	require.NoError(t, repo.Unlike(ctx, repository.RecipeTarget, u.ID, r.ID))
	require.NoError(t, repo.Unlike(ctx, repository.RecipeTarget, u.ID, r.ID))
	edges, err = repo.Likes(ctx, repository.RecipeTarget, []uint64{r.ID})
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestConcurrentLikesConverge(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	fx := testutil.NewFixture(t, gdb)
	u := fx.User("u")
	r := fx.Recipe(db.Recipe{OwnerID: u.ID, CategoryID: fx.Category("c").ID, Status: db.RecipeAccepted})
	repo := repository.NewEngagementRepository(gdb)

	const n = 16
	errs := make(chan error, 2*n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- repo.Like(ctx, repository.RecipeTarget, u.ID, r.ID)
		}()
		go func() {
			defer wg.Done()
			errs <- repo.Bookmark(ctx, repository.RecipeTarget, u.ID, r.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var likes, bookmarks int64
	require.NoError(t, gdb.Model(&db.LikeRecipe{}).Where("recipe_id = ?", r.ID).Count(&likes).Error)
	require.NoError(t, gdb.Model(&db.BookmarkRecipe{}).Where("recipe_id = ?", r.ID).Count(&bookmarks).Error)
	assert.Equal(t, int64(1), likes)
	assert.Equal(t, int64(1), bookmarks)
}

func TestVisibility(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	fx := testutil.NewFixture(t, gdb)
	owner, other := fx.User("owner"), fx.User("other")
	cat := fx.Category("c")
	banned := fx.Recipe(db.Recipe{OwnerID: owner.ID, CategoryID: cat.ID, Status: db.RecipeBanned})
	rejected := fx.Recipe(db.Recipe{OwnerID: owner.ID, CategoryID: cat.ID, Status: db.RecipeRejected})
	plan := fx.Plan(owner.ID, 1, 1, 0)
	require.NoError(t, gdb.Model(&db.MealPlan{}).Where("id = ?", plan.ID).Update("is_public", false).Error)
	repo := repository.NewEngagementRepository(gdb)

	cases := []struct {
		name   string
		target repository.Target
		viewer uint64
		id     uint64
		want   bool
	}{
		{"banned hidden from owner", repository.RecipeTarget, owner.ID, banned.ID, false},
		{"rejected visible to owner", repository.RecipeTarget, owner.ID, rejected.ID, true},
		{"rejected hidden from others", repository.RecipeTarget, other.ID, rejected.ID, false},
		{"private plan visible to owner", repository.MealPlanTarget, owner.ID, plan.ID, true},
		{"private plan hidden from others", repository.MealPlanTarget, other.ID, plan.ID, false},
		{"missing", repository.RecipeTarget, owner.ID, 999, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Visible(ctx, tc.target, tc.viewer, tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
