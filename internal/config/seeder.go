package config

import (
	"errors"
	"log"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db    *gorm.DB
	admin AdminConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, admin AdminConfig) *Seeder {
	return &Seeder{db: db, admin: admin}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the first admin from SEED_ADMIN_* when none exists
func (s *Seeder) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	if s.admin.SeedPassword == "" {
		log.Println("⚠️ Skipping admin seed: SEED_ADMIN_PASSWORD is not set")
		return nil
	}
	if len(s.admin.SeedPassword) < 8 {
		return errors.New("SEED_ADMIN_PASSWORD must be at least 8 characters")
	}

	hashedPassword, err := password.Hash(s.admin.SeedPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: s.admin.SeedUsername,
		Email:    s.admin.SeedEmail,
		FullName: "Administrator",
		Password: hashedPassword,
		Role:     "ADMIN",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
