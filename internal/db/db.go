package db

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"readit/internal/models"
)

// Connect opens the postgres database named by DATABASE_URL.
func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=readit port=5432 sslmode=disable"
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return gdb, nil
}

// Migrate creates the schema plus the constraints AutoMigrate cannot express.
// Tests run it against an in-memory sqlite database, so everything here has
// to stay portable between postgres and sqlite.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Sub{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
	); err != nil {
		return err
	}

	// Sub names are unique regardless of letter case. The expression index
	// backs the check-then-insert in SubService.Create against concurrent
	// creators of the same name.
	return gdb.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_subs_name_lower ON subs (lower(name))",
	).Error
}
