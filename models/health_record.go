package models

import (
	"time"

	"gorm.io/gorm"
)

// HealthRecord is an uploaded document plus its file metadata. The file
// itself lives in object storage; PublicID identifies it there so the
// object can be addressed when the record is deleted.
type HealthRecord struct {
	gorm.Model
	OwnerID         uint              `json:"owner_id" gorm:"index"`
	Owner           User              `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	FileURL         string            `json:"file_url"`
	PublicID        string            `json:"public_id"`
	FileName        string            `json:"file_name"`
	FileSize        int64             `json:"file_size"`
	MimeType        string            `json:"mime_type"`
	Description     string            `json:"description"`
	PastMedications string            `json:"past_medications"`
	Private         bool              `json:"private" gorm:"default:false"`
	AccessLog       []RecordAccessLog `json:"access_log,omitempty" gorm:"foreignKey:RecordID"`
}

// RecordAccessLog is one audited read of a health record. GlassBreak
// marks an emergency override of the record's privacy flag.
type RecordAccessLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	RecordID   uint      `json:"record_id" gorm:"index"`
	ViewerID   uint      `json:"viewer_id"`
	Viewer     User      `json:"viewer,omitempty" gorm:"foreignKey:ViewerID"`
	GlassBreak bool      `json:"glass_break"`
	Reason     string    `json:"reason,omitempty"`
	ViewedAt   time.Time `json:"viewed_at"`
}
