package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// noOverlapDDL adds the backstop for double bookings: two active
// appointments of one barber may not share any instant.
const noOverlapDDL = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
    ) THEN
        ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                barber_id WITH =,
                tstzrange(start_at, end_at, '[)') WITH &&
            )
            WHERE (status IN ('pending', 'confirmed', 'arrived', 'in_progress'));
    END IF;
END $$;`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, cfg.DefaultTimezone); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB, defaultTimezone string) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.Barber{},
		&models.Service{},
		&models.Client{},
		&models.ShopHours{},
		&models.WorkingHours{},
		&models.SpecialDate{},
		&models.SpecialDateBreak{},
		&models.TimeOff{},
		&models.Break{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.WaitlistEntry{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(noOverlapDDL).Error; err != nil {
		return fmt.Errorf("create appointments_no_overlap: %w", err)
	}

	return db.Exec(`
        UPDATE barbershops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, defaultTimezone).Error
}
