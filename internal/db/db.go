package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oggyb/mealplanner/internal/config"
	"github.com/oggyb/mealplanner/internal/logger"
)

const searchIndex = "idx_recipes_search_text"

// NewDB initializes the MySQL connection using DSN from config and migrates it.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logger.GormLevel(cfg.DB.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate syncs the schema with the models. On MySQL it also creates the
// FULLTEXT index that free-text recipe search relies on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if db.Dialector.Name() == "mysql" && !db.Migrator().HasIndex(&Recipe{}, searchIndex) {
		stmt := fmt.Sprintf("ALTER TABLE recipes ADD FULLTEXT INDEX %s (search_text)", searchIndex)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create search index: %w", err)
		}
	}
	return nil
}
