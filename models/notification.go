package models

import (
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifyBooked    NotificationType = "appointment_booked"
	NotifyCancelled NotificationType = "appointment_cancelled"
	NotifyCompleted NotificationType = "appointment_completed"
	NotifyReminder  NotificationType = "appointment_reminder"
	NotifyRecord    NotificationType = "record_access"
)

// Notification rows are created as side effects of appointment and
// record state changes and surfaced in-app.
type Notification struct {
	gorm.Model
	UserID  uint             `json:"user_id" gorm:"index"`
	User    User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Read    bool             `json:"read" gorm:"default:false"`
}
