// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"greenspark/models"

	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := MigrateModels(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// MigrateModels auto-migrates every application model. Exposed separately so
// tests can migrate an in-memory database.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Assignment{},
		&models.Lesson{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
		&models.Game{},
		&models.GameProgress{},
		&models.Video{},
		&models.Book{},
		&models.Note{},
	)
}

// createIndexes creates indexes AutoMigrate doesn't cover
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// Leaderboard sorts by points; teacher panel filters students by role
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_eco_points ON users(eco_points DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)")

	// Media listings sort newest first
	db.Exec("CREATE INDEX IF NOT EXISTS idx_videos_created ON videos(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_books_created ON books(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at DESC)")

	// Quiz attempt lookups are by (quiz, user)
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_attempts_quiz_user ON quiz_attempts(quiz_id, user_id)")

	log.Println("✅ Indexes created successfully")
}
