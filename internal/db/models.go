package db

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User table. PasswordHash never leaves the repository layer.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;size:64;not null"`
	Email        string    `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Avatar       string    `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

type Category struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
}

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

type RecipeStatus int

const (
	RecipePending RecipeStatus = iota
	RecipeAccepted
	RecipeRejected
	RecipeBanned
)

// Ingredient is stored inside the recipe row as JSON.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Recipe is a published dish. AlbumID nil marks a standalone recipe.
//
// Nutrition fields are per 100g. SearchText is derived on save and is the
// only column free-text search reads (FULLTEXT indexed on MySQL).
type Recipe struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	OwnerID        uint64 `gorm:"not null;index:idx_recipes_owner_created,priority:1"`
	Owner          User   `gorm:"foreignKey:OwnerID"`
	CategoryID     uint64 `gorm:"not null;index"`
	Category       Category
	AlbumID        *uint64 `gorm:"index"`
	Title          string  `gorm:"size:255;not null"`
	Description    string  `gorm:"type:text"`
	Body           string  `gorm:"type:text"`
	ImagePath      string  `gorm:"size:512"`
	ImageName      string  `gorm:"size:255"`
	VideoURL       string  `gorm:"size:512"`
	Time           int     `gorm:"not null;default:0;index"`
	Difficulty     Difficulty
	Region         int
	ProcessingFood string       `gorm:"size:64;index"`
	Ingredients    []Ingredient `gorm:"serializer:json"`
	Energy         float64
	Protein        float64
	Fat            float64
	Carbohydrate   float64
	Status         RecipeStatus `gorm:"not null;default:0;index:idx_recipes_status_created,priority:1"`
	View           int64        `gorm:"column:view_count;not null;default:0"`
	SearchText     string       `gorm:"type:text"`
	CreatedAt      time.Time    `gorm:"autoCreateTime;index:idx_recipes_status_created,priority:2;index:idx_recipes_owner_created,priority:2"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime"`
}

// BeforeSave keeps SearchText in sync with the searchable fields.
func (r *Recipe) BeforeSave(*gorm.DB) error {
	parts := []string{r.Title, r.Description}
	for _, ing := range r.Ingredients {
		parts = append(parts, ing.Name)
	}
	r.SearchText = strings.ToLower(strings.Join(parts, " "))
	return nil
}

// LikeRecipe is a like edge. Composite PK: at most one per (user, recipe).
type LikeRecipe struct {
	UserID    uint64    `gorm:"primaryKey"`
	RecipeID  uint64    `gorm:"primaryKey;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BookmarkRecipe is a bookmark edge. Composite PK: at most one per (user, recipe).
type BookmarkRecipe struct {
	UserID    uint64    `gorm:"primaryKey"`
	RecipeID  uint64    `gorm:"primaryKey;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// CommentRecipe is never deleted by moderation; IsBanned hides it at read time.
type CommentRecipe struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index"`
	RecipeID  uint64    `gorm:"not null;index:idx_comment_recipes_target,priority:1"`
	Text      string    `gorm:"type:text;not null"`
	IsBanned  bool      `gorm:"not null;default:false;index:idx_comment_recipes_target,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type LikeMealPlan struct {
	UserID     uint64    `gorm:"primaryKey"`
	MealPlanID uint64    `gorm:"primaryKey;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

type BookmarkMealPlan struct {
	UserID     uint64    `gorm:"primaryKey"`
	MealPlanID uint64    `gorm:"primaryKey;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

type CommentMealPlan struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"not null;index"`
	MealPlanID uint64    `gorm:"not null;index:idx_comment_meal_plans_target,priority:1"`
	Text       string    `gorm:"type:text;not null"`
	IsBanned   bool      `gorm:"not null;default:false;index:idx_comment_meal_plans_target,priority:2"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealPlan is the immutable-once-published template.
type MealPlan struct {
	ID             uint64  `gorm:"primaryKey;autoIncrement"`
	OwnerID        uint64  `gorm:"not null;index"`
	SourcePlanID   *uint64 `gorm:"index"`
	Title          string  `gorm:"size:255;not null"`
	Description    string  `gorm:"type:text"`
	TargetCalories float64
	TargetProtein  float64
	TargetCarbs    float64
	TargetFat      float64
	DurationDays   int           `gorm:"not null"`
	IsPublic       bool          `gorm:"not null;default:false;index"`
	Tags           []string      `gorm:"serializer:json"`
	Days           []MealPlanDay `gorm:"foreignKey:MealPlanID"`
	CreatedAt      time.Time     `gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime"`
}

// MealPlanDay is addressable on its own; order comes from DayNumber.
type MealPlanDay struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement"`
	MealPlanID uint64         `gorm:"not null;uniqueIndex:idx_meal_plan_day,priority:1"`
	DayNumber  int            `gorm:"not null;uniqueIndex:idx_meal_plan_day,priority:2"`
	Meals      []MealPlanMeal `gorm:"foreignKey:DayID"`
}

// MealPlanMeal either references a recipe or carries a free-form name.
// Nil nutrition fields fall back to the recipe at materialization.
type MealPlanMeal struct {
	ID        uint64   `gorm:"primaryKey;autoIncrement"`
	DayID     uint64   `gorm:"not null;index"`
	MealType  MealType `gorm:"size:16;not null"`
	MealOrder int      `gorm:"not null"`
	RecipeID  *uint64  `gorm:"index"`
	Name      string   `gorm:"size:255"`
	Calories  *float64
	Protein   *float64
	Carbs     *float64
	Fat       *float64
}

type ScheduleStatus int

const (
	ScheduleActive ScheduleStatus = iota
	ScheduleCompleted
	SchedulePaused
	ScheduleCancelled
)

// Schedule is a user's dated instantiation of a MealPlan.
//
// ItemCount is written in the same transaction as the items and is what
// readers compare against to detect a partial materialization.
type Schedule struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement"`
	OwnerID        uint64         `gorm:"not null;index:idx_schedules_owner_status,priority:1"`
	MealPlanID     uint64         `gorm:"not null;index"`
	Title          string         `gorm:"size:255;not null"`
	StartDate      string         `gorm:"size:10;not null"`
	Status         ScheduleStatus `gorm:"not null;default:0;index:idx_schedules_owner_status,priority:2"`
	ItemCount      int            `gorm:"not null;default:0"`
	TargetCalories float64
	TargetProtein  float64
	TargetCarbs    float64
	TargetFat      float64
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Schedule) TableName() string { return "user_meal_schedules" }

type MealItemStatus int

const (
	MealPending MealItemStatus = iota
	MealCompleted
	MealSkipped
)

// MealItem is one dated occurrence of a meal. Everything except Status and
// Note is a snapshot taken at materialization.
type MealItem struct {
	ID         uint64   `gorm:"primaryKey;autoIncrement"`
	ScheduleID uint64   `gorm:"not null;index:idx_meal_items_schedule_date,priority:1"`
	Date       string   `gorm:"size:10;not null;index:idx_meal_items_schedule_date,priority:2"`
	DayNumber  int      `gorm:"not null"`
	MealType   MealType `gorm:"size:16;not null"`
	MealOrder  int      `gorm:"not null"`
	RecipeID   *uint64
	Name       string `gorm:"size:255"`
	Calories   float64
	Protein    float64
	Carbs      float64
	Fat        float64
	Status     MealItemStatus `gorm:"not null;default:0"`
	Note       string         `gorm:"size:500"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{}, &Category{}, &Recipe{},
		&LikeRecipe{}, &BookmarkRecipe{}, &CommentRecipe{},
		&MealPlan{}, &MealPlanDay{}, &MealPlanMeal{},
		&LikeMealPlan{}, &BookmarkMealPlan{}, &CommentMealPlan{},
		&Schedule{}, &MealItem{},
	}
}
