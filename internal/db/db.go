package db

import (
	"log"
	"time"

	"github.com/eduqar/tutor-marketplace/internal/config"
	"github.com/eduqar/tutor-marketplace/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.TeacherAvailability{},
		&models.Booking{},
		&models.PayoutRecord{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Two active bookings for the same teacher may never overlap on the same
	// date. The repository checks this inside a locking transaction, and this
	// constraint is the database-level backstop: a violation surfaces as
	// SQLSTATE 23P01 and is treated as a regular slot conflict.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
            ) THEN
                ALTER TABLE bookings
                    ADD CONSTRAINT bookings_no_overlap
                    EXCLUDE USING gist (
                        teacher_id WITH =,
                        scheduled_date WITH =,
                        int4range(start_minute, end_minute) WITH &&
                    )
                    WHERE (status IN ('pending', 'confirmed'));
            END IF;
        END $$;
    `)

	return db
}
