package models

import (
	"time"

	"gorm.io/gorm"
)

// Dependent is a patient-managed sub-profile used to book appointments
// on behalf of a family member.
type Dependent struct {
	gorm.Model
	PatientID    uint      `json:"patient_id" gorm:"index"`
	Patient      User      `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Relationship string    `json:"relationship"`
	DateOfBirth  time.Time `json:"date_of_birth"`
}
