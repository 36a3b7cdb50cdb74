package models

import (
	"strings"
	"time"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

type User struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	HumanID       string         `json:"human_id" gorm:"uniqueIndex"` // e.g. PAT-4F7K2M
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `json:"email" gorm:"unique"`
	Phone         string         `json:"phone"`
	Password      string         `json:"password,omitempty"`
	Speciality    string         `json:"speciality,omitempty"` // doctors only
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	RoleID        uint           `json:"role_id"`
	Role          Role           `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Availability  []Availability `json:"availability,omitempty" gorm:"foreignKey:DoctorID"`
	Appointments  []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:DoctorID"`
	Bookings      []Appointment  `json:"bookings,omitempty" gorm:"foreignKey:PatientID"`
	Dependents    []Dependent    `json:"dependents,omitempty" gorm:"foreignKey:PatientID"`
	HealthRecords []HealthRecord `json:"health_records,omitempty" gorm:"foreignKey:OwnerID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Sanitize strips fields that must never leave the service.
func (u *User) Sanitize() {
	u.Password = ""
}
