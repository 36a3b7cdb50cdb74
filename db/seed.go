package db

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

// Seed creates the three roles, their permissions and the bootstrap
// admin account. Safe to run repeatedly.
func Seed() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Administrator with full access"},
		{Name: models.RoleDoctor, Description: "Doctor who manages a schedule and sees patients"},
		{Name: models.RolePatient, Description: "Patient who books appointments and uploads records"},
	}
	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}

	permissions := []models.Permission{
		{Name: "create_user", Description: "Create users", Resource: "users", Action: "create"},
		{Name: "read_users", Description: "View user list", Resource: "users", Action: "read"},
		{Name: "update_user", Description: "Update user details", Resource: "users", Action: "update"},
		{Name: "deactivate_user", Description: "Deactivate users", Resource: "users", Action: "delete"},

		{Name: "create_appointment", Description: "Book appointments", Resource: "appointments", Action: "create"},
		{Name: "read_appointments", Description: "View appointments", Resource: "appointments", Action: "read"},
		{Name: "update_appointment", Description: "Change appointment status", Resource: "appointments", Action: "update"},

		{Name: "manage_availability", Description: "Edit working windows", Resource: "availability", Action: "update"},
		{Name: "read_availability", Description: "View working windows", Resource: "availability", Action: "read"},

		{Name: "create_record", Description: "Upload health records", Resource: "records", Action: "create"},
		{Name: "read_records", Description: "View health records", Resource: "records", Action: "read"},
		{Name: "delete_record", Description: "Delete own health records", Resource: "records", Action: "delete"},

		{Name: "read_reports", Description: "View aggregate reports", Resource: "reports", Action: "read"},
	}
	for _, permission := range permissions {
		var existing models.Permission
		if DB.Where("name = ?", permission.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&permission)
		}
	}

	grant(models.RoleAdmin, func(*models.Permission) bool { return true })
	grant(models.RoleDoctor, func(p *models.Permission) bool {
		switch p.Name {
		case "read_appointments", "update_appointment",
			"manage_availability", "read_availability",
			"read_records":
			return true
		}
		return false
	})
	grant(models.RolePatient, func(p *models.Permission) bool {
		switch p.Name {
		case "create_appointment", "read_appointments", "update_appointment",
			"read_availability",
			"create_record", "read_records", "delete_record":
			return true
		}
		return false
	})

	seedAdmin()
}

// grant seeds a role's default permission set, but only on first boot:
// a role that already holds grants was either seeded before or edited
// through the RBAC endpoints, and those edits must survive restarts.
func grant(roleName string, want func(*models.Permission) bool) {
	var role models.Role
	if DB.Where("name = ?", roleName).First(&role).RowsAffected == 0 {
		return
	}
	if DB.Model(&role).Association("Permissions").Count() > 0 {
		return
	}

	var all []models.Permission
	DB.Find(&all)

	selected := make([]models.Permission, 0, len(all))
	for i := range all {
		if want(&all[i]) {
			selected = append(selected, all[i])
		}
	}

	DB.Model(&role).Association("Permissions").Append(&selected)
}

func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var existing models.User
	if DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
		return
	}

	var role models.Role
	if DB.Where("name = ?", models.RoleAdmin).First(&role).RowsAffected == 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		HumanID:   utils.HumanID("ADM"),
		FirstName: "System",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hashed),
		RoleID:    role.ID,
		IsActive:  true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to seed admin user: %v", err)
	}
}
