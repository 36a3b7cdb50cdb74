package doctor

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

// hasTreated reports whether the doctor has any appointment with the
// patient, which is what grants routine record access.
func hasTreated(doctorID, patientID uint) bool {
	var count int64
	db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count)
	return count > 0
}

// recordSummary is the listing view of a health record. It carries no
// file location: reading the document goes through ViewRecord, which is
// the path that writes the access log.
type recordSummary struct {
	ID          uint      `json:"id"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	Description string    `json:"description"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func summarize(record *models.HealthRecord) recordSummary {
	return recordSummary{
		ID:          record.ID,
		FileName:    record.FileName,
		FileSize:    record.FileSize,
		MimeType:    record.MimeType,
		Description: record.Description,
		UploadedAt:  record.CreatedAt,
	}
}

// GetPatientRecords lists a patient's health records for a treating
// doctor. Private records are hidden here; they require glass-break
// access.
func GetPatientRecords(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)
	patientID, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, utils.Validation("invalid patient ID"))
	}

	if !hasTreated(doctorID, uint(patientID)) {
		return utils.Fail(c, utils.Forbidden("no treating relationship with this patient"))
	}

	var records []models.HealthRecord
	if err := db.DB.Where("owner_id = ? AND private = ?", patientID, false).Find(&records).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch records", err))
	}
	summaries := make([]recordSummary, 0, len(records))
	for i := range records {
		summaries = append(summaries, summarize(&records[i]))
	}

	var hidden int64
	db.DB.Model(&models.HealthRecord{}).
		Where("owner_id = ? AND private = ?", patientID, true).
		Count(&hidden)

	return c.JSON(fiber.Map{
		"records":        summaries,
		"private_hidden": hidden,
	})
}

// ViewRecord reads one record and appends the audit log entry. Private
// records are refused unless glass_break is set, in which case the read
// proceeds and the entry is flagged as emergency access.
func ViewRecord(c *fiber.Ctx) error {
	doctorID := c.Locals("userID").(uint)
	id := c.Params("id")

	type GlassBreakInput struct {
		GlassBreak bool   `json:"glass_break"`
		Reason     string `json:"reason"`
	}
	input := new(GlassBreakInput)
	c.BodyParser(input) // body optional for non-private records

	var record models.HealthRecord
	if err := db.DB.First(&record, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("record not found"))
	}

	if !hasTreated(doctorID, record.OwnerID) {
		return utils.Fail(c, utils.Forbidden("no treating relationship with this patient"))
	}

	if record.Private && !input.GlassBreak {
		return utils.Fail(c, utils.Forbidden("record is private; emergency access requires glass_break with a reason"))
	}
	if record.Private && input.GlassBreak && input.Reason == "" {
		return utils.Fail(c, utils.Validation("glass-break access requires a reason"))
	}

	entry := models.RecordAccessLog{
		RecordID:   record.ID,
		ViewerID:   doctorID,
		GlassBreak: record.Private && input.GlassBreak,
		Reason:     input.Reason,
		ViewedAt:   time.Now(),
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to write access log", err))
	}

	if entry.GlassBreak {
		var doctor models.User
		db.DB.First(&doctor, doctorID)
		notify(record.OwnerID, models.NotifyRecord, "Emergency record access",
			fmt.Sprintf("Dr. %s accessed your private record %q under emergency override.",
				doctor.LastName, record.FileName))
	}

	return c.JSON(record)
}
