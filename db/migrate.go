package db

import (
	"fmt"
	"log"

	"github.com/medbook/clinic-app/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.User{},
		&models.Availability{},
		&models.Appointment{},
		&models.Dependent{},
		&models.HealthRecord{},
		&models.RecordAccessLog{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	Seed()

	fmt.Println("✅ Migrations applied successfully!")
}
