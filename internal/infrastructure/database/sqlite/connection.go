package sqlite

import (
	"fmt"
	"log"
	"os"
	"sync"

	"carwash/internal/domain/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	dbInstance *gorm.DB
	once       sync.Once
)

// NewDB initializes the GORM database connection using SQLite.
// It ensures that the connection is established only once (singleton pattern).
func NewDB(path string) *gorm.DB {
	once.Do(func() {
		if path == "" {
			path = "carwash.db"
			log.Println("⚠️ WARN: database path not set, defaulting to 'carwash.db'")
		}

		// Configure GORM logger
		newLogger := gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             0,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)

		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: newLogger,
		})
		if err != nil {
			log.Fatalf("🔴 ERROR: Failed to connect to database: %v", err)
		}

		log.Printf("Successfully connected to database: %s", path)
		dbInstance = db

		// Auto-migrate the schema
		if err := AutoMigrate(dbInstance); err != nil {
			log.Fatalf("🔴 ERROR: Failed to auto-migrate database schema: %v", err)
		}
		log.Println("Database schema migration completed.")
	})
	return dbInstance
}

// AutoMigrate automatically migrates the database schema for the defined entities.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Customer{},
		&entity.Plan{},
		&entity.Subscription{},
		&entity.ServiceOccurrence{},
		&entity.ReminderNotification{},
		&entity.LiveNotification{},
	)
	if err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// At most one non-cancelled occurrence may exist per subscription and
	// date. The scheduler's exists-before-create check is application-level;
	// this index makes the invariant hold under concurrent scheduler runs.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_occurrence_sub_date
		ON service_occurrences (subscription_id, scheduled_date)
		WHERE status != 'cancelled'`).Error
	if err != nil {
		return fmt.Errorf("occurrence uniqueness index creation failed: %w", err)
	}
	return nil
}

// CloseDB closes the database connection if it's open.
func CloseDB() error {
	if dbInstance != nil {
		sqlDB, err := dbInstance.DB()
		if err != nil {
			return fmt.Errorf("failed to get underlying *sql.DB: %w", err)
		}
		log.Println("Closing database connection...")
		return sqlDB.Close()
	}
	return nil
}
