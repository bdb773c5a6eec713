package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/config"
	"github.com/elitecars/rental-backend/internal/models"
)

func RunMigrations(db *gorm.DB, cfg config.App) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Driver{},
		&models.Booking{},
		&models.Settings{},
		&models.Inquiry{},
	)
	if err != nil {
		return err
	}

	// Enum-style constraints on bookings
	if db.Migrator().HasTable(&models.Booking{}) {
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled'))`)
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_payment_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_payment_status_check CHECK (payment_status IN ('pending', 'paid', 'failed'))`)
	}

	if db.Migrator().HasTable(&models.User{}) {
		db.Exec(`ALTER TABLE profiles DROP CONSTRAINT IF EXISTS profiles_role_check`)
		db.Exec(`ALTER TABLE profiles ADD CONSTRAINT profiles_role_check CHECK (role IN ('customer', 'admin'))`)
	}

	if err := seedSettings(db, cfg); err != nil {
		return err
	}

	return seedAdmin(db, cfg)
}

// seedSettings makes sure the singleton configuration row exists.
func seedSettings(db *gorm.DB, cfg config.App) error {
	var settings models.Settings
	err := db.First(&settings, models.SettingsRowID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	settings = models.Settings{
		ID:             models.SettingsRowID,
		WhatsAppNumber: cfg.OperatorWhatsApp,
	}
	return db.Create(&settings).Error
}

// seedAdmin creates the back-office account from the environment when no
// admin exists yet. A deployment without ADMIN_EMAIL simply skips this.
func seedAdmin(db *gorm.DB, cfg config.App) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := models.User{
		FullName: "Administrator",
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     models.RoleAdmin,
	}
	if err := admin.HashPassword(); err != nil {
		return err
	}
	return db.Create(&admin).Error
}
