package patient

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

// UploadRecord stores a health-record file in object storage and its
// metadata row in the database.
func UploadRecord(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Fail(c, utils.Validation("file is required"))
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if appErr := utils.ValidUpload(fileHeader.Size, mimeType); appErr != nil {
		return utils.Fail(c, appErr)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to read upload", err))
	}
	defer f.Close()

	publicID := fmt.Sprintf("record_%d_%s", patientID, uuid.NewString())
	url, err := utils.UploadFile(c.Context(), f, publicID, "health_records")
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to store file", err))
	}

	record := models.HealthRecord{
		OwnerID:         patientID,
		FileURL:         url,
		PublicID:        publicID,
		FileName:        fileHeader.Filename,
		FileSize:        fileHeader.Size,
		MimeType:        mimeType,
		Description:     c.FormValue("description"),
		PastMedications: c.FormValue("past_medications"),
		Private:         c.FormValue("private") == "true",
	}
	if err := db.DB.Create(&record).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to save record", err))
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// GetMyRecords lists the patient's own records with their access logs,
// so owners can see who has viewed each document.
func GetMyRecords(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)

	var records []models.HealthRecord
	if err := db.DB.Preload("AccessLog").Preload("AccessLog.Viewer").
		Where("owner_id = ?", patientID).Find(&records).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch records", err))
	}
	for i := range records {
		for j := range records[i].AccessLog {
			records[i].AccessLog[j].Viewer.Sanitize()
		}
	}
	return c.JSON(records)
}

// UpdateRecord edits the description, medication notes or privacy flag.
func UpdateRecord(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)
	id := c.Params("id")

	var record models.HealthRecord
	if err := db.DB.First(&record, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("record not found"))
	}
	if record.OwnerID != patientID {
		return utils.Fail(c, utils.Forbidden("record does not belong to you"))
	}

	type RecordInput struct {
		Description     *string `json:"description"`
		PastMedications *string `json:"past_medications"`
		Private         *bool   `json:"private"`
	}
	input := new(RecordInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.PastMedications != nil {
		record.PastMedications = *input.PastMedications
	}
	if input.Private != nil {
		record.Private = *input.Private
	}

	if err := db.DB.Save(&record).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to update record", err))
	}
	return c.JSON(record)
}

// DeleteRecord removes the record and its stored file. Explicit owner
// action is the only path that deletes a record.
func DeleteRecord(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)
	id := c.Params("id")

	var record models.HealthRecord
	if err := db.DB.First(&record, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("record not found"))
	}
	if record.OwnerID != patientID {
		return utils.Fail(c, utils.Forbidden("record does not belong to you"))
	}

	if err := utils.DeleteFile(c.Context(), record.PublicID); err != nil {
		return utils.Fail(c, utils.Backend("failed to delete stored file", err))
	}
	if err := db.DB.Delete(&record).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to delete record", err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
