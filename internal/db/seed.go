package db

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/mealplanner/internal/logger"
)

var seedTables = []string{
	"meal_items", "user_meal_schedules",
	"comment_meal_plans", "bookmark_meal_plans", "like_meal_plans",
	"meal_plan_meals", "meal_plan_days", "meal_plans",
	"comment_recipes", "bookmark_recipes", "like_recipes",
	"recipes", "categories", "users",
}

var seedCategories = []string{"Breakfast", "Soup", "Salad", "Main", "Dessert"}

var seedDishes = []struct {
	Title   string
	Minutes int
	Energy  float64
}{
	{"Overnight oats", 10, 150}, {"Miso soup", 15, 40}, {"Greek salad", 15, 90},
	{"Chicken stir fry", 25, 160}, {"Lentil curry", 45, 120}, {"Beef stew", 120, 140},
	{"Banana pancakes", 20, 220}, {"Tomato soup", 30, 50}, {"Roast vegetables", 60, 80},
	{"Chocolate mousse", 30, 300}, {"Pho", 150, 70}, {"Caesar salad", 15, 180},
}

// SeedTestData resets the database and populates it with demo data.
//
// Behavior:
//  1. Clears every engine table.
//  2. Creates 10 users with hashed passwords and the demo categories.
//  3. Creates the demo recipes (mostly accepted, some pending) with random
//     likes, bookmarks and comments.
//  4. Creates one public 3-day meal plan built from the accepted recipes.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range seedTables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		switch db.Dialector.Name() {
		case "mysql":
			db.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		case "sqlite":
			db.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table)
		}
	}
	logger.Info("cleared existing data", "tables", len(seedTables))

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]User, 0, 10)
	for i := 1; i <= 10; i++ {
		users = append(users, User{
			Username:     fmt.Sprintf("cook%d", i),
			Email:        fmt.Sprintf("cook%d@example.com", i),
			PasswordHash: string(hash),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	categories := make([]Category, 0, len(seedCategories))
	for _, name := range seedCategories {
		categories = append(categories, Category{Name: name})
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	logger.Info("seeded users", "users", len(users), "categories", len(categories))

	recipes := make([]Recipe, 0, len(seedDishes))
	for i, d := range seedDishes {
		status := RecipeAccepted
		if i%5 == 4 {
			status = RecipePending
		}
		recipes = append(recipes, Recipe{
			OwnerID:        users[i%3].ID,
			CategoryID:     categories[i%len(categories)].ID,
			Title:          d.Title,
			Description:    "A demo recipe for " + d.Title,
			Time:           d.Minutes,
			Difficulty:     Difficulty(i % 3),
			Region:         i % 4,
			ProcessingFood: []string{"boil", "fry", "bake", "raw"}[i%4],
			Ingredients:    []Ingredient{{Name: "salt", Quantity: 1, Unit: "tsp"}},
			Energy:         d.Energy,
			Protein:        float64(5 + i),
			Fat:            float64(2 + i%7),
			Carbohydrate:   float64(10 + i*2),
			Status:         status,
		})
	}
	if err := db.Create(&recipes).Error; err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}

	// --- Engagement edges (~40% like, ~25% bookmark) ---
	upsert := clause.OnConflict{DoNothing: true}
	for _, u := range users {
		for _, rc := range recipes {
			if r.Intn(100) < 40 {
				db.Clauses(upsert).Create(&LikeRecipe{UserID: u.ID, RecipeID: rc.ID})
			}
			if r.Intn(100) < 25 {
				db.Clauses(upsert).Create(&BookmarkRecipe{UserID: u.ID, RecipeID: rc.ID})
			}
			if r.Intn(100) < 10 {
				db.Create(&CommentRecipe{UserID: u.ID, RecipeID: rc.ID, Text: "Tasty!"})
			}
		}
	}
	logger.Info("seeded recipes with engagement", "recipes", len(recipes))

	plan := MealPlan{
		OwnerID:        users[0].ID,
		Title:          "Three day starter",
		Description:    "Light breakfasts and warm dinners",
		TargetCalories: 1800,
		TargetProtein:  90,
		TargetCarbs:    200,
		TargetFat:      60,
		DurationDays:   3,
		IsPublic:       true,
		Tags:           []string{"starter", "balanced"},
	}
	for day := 1; day <= 3; day++ {
		breakfast := recipes[0].ID
		dinner := recipes[day+4].ID
		plan.Days = append(plan.Days, MealPlanDay{
			DayNumber: day,
			Meals: []MealPlanMeal{
				{MealType: MealBreakfast, MealOrder: 1, RecipeID: &breakfast},
				{MealType: MealDinner, MealOrder: 2, RecipeID: &dinner},
			},
		})
	}
	if err := db.Create(&plan).Error; err != nil {
		return fmt.Errorf("failed to seed meal plan: %w", err)
	}
	logger.Info("seeded demo meal plan")

	return nil
}
