package config

import (
	"errors"
	"log"

	"rentdesk/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedSampleData seeds a demo building with a handful of rooms.
// Existing records (matched by name / number) are left untouched.
func SeedSampleData(db *gorm.DB) error {
	daily := decimal.NewFromInt(45)
	weekly := decimal.NewFromInt(250)
	monthly := decimal.NewFromInt(850)

	building := models.Building{
		Name:        "Harbor House",
		Address:     "12 Harbor Road",
		DailyRate:   &daily,
		WeeklyRate:  &weekly,
		MonthlyRate: &monthly,
	}

	var existing models.Building
	err := db.Where("name = ?", building.Name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Omit("Rooms").Create(&building).Error; err != nil {
			return err
		}
		log.Printf("   Created building: %s", building.Name)
	case err != nil:
		return err
	default:
		building = existing
	}

	rooms := []models.Room{
		{Number: "101", Floor: 1, RentalRate: monthly, RentalPeriod: "monthly"},
		{Number: "102", Floor: 1, RentalRate: monthly, RentalPeriod: "monthly"},
		{Number: "201", Floor: 2, RentalRate: weekly, RentalPeriod: "weekly"},
		{Number: "202", Floor: 2, RentalRate: daily, RentalPeriod: "daily"},
	}

	for _, room := range rooms {
		room.BuildingID = building.ID
		room.Status = "available"

		var found models.Room
		if err := db.Where("building_id = ? AND number = ?", building.ID, room.Number).First(&found).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Omit("Building").Create(&room).Error; err != nil {
					return err
				}
				log.Printf("   Created room: %s/%s", building.Name, room.Number)
				continue
			}
			return err
		}
	}

	log.Println("✅ Sample data seeded successfully")
	return nil
}
