package patient

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

type dependentInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Relationship string `json:"relationship"`
	DateOfBirth  string `json:"date_of_birth"` // YYYY-MM-DD
}

// GetDependents lists the patient's dependents.
func GetDependents(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)

	var dependents []models.Dependent
	if err := db.DB.Where("patient_id = ?", patientID).Find(&dependents).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch dependents", err))
	}
	return c.JSON(dependents)
}

// CreateDependent adds a family member the patient can book for.
func CreateDependent(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)

	input := new(dependentInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if err := utils.Required(map[string]string{
		"first_name":    input.FirstName,
		"relationship":  input.Relationship,
		"date_of_birth": input.DateOfBirth,
	}); err != nil {
		return utils.Fail(c, err)
	}

	dob, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		return utils.Fail(c, utils.Validation("invalid date_of_birth, use YYYY-MM-DD"))
	}

	dependent := models.Dependent{
		PatientID:    patientID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Relationship: input.Relationship,
		DateOfBirth:  dob,
	}
	if err := db.DB.Create(&dependent).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to create dependent", err))
	}
	return c.Status(fiber.StatusCreated).JSON(dependent)
}

// UpdateDependent edits one of the patient's own dependents.
func UpdateDependent(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)
	id := c.Params("id")

	var dependent models.Dependent
	if err := db.DB.First(&dependent, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("dependent not found"))
	}
	if dependent.PatientID != patientID {
		return utils.Fail(c, utils.Forbidden("dependent does not belong to you"))
	}

	input := new(dependentInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if input.FirstName != "" {
		dependent.FirstName = input.FirstName
	}
	if input.LastName != "" {
		dependent.LastName = input.LastName
	}
	if input.Relationship != "" {
		dependent.Relationship = input.Relationship
	}
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			return utils.Fail(c, utils.Validation("invalid date_of_birth, use YYYY-MM-DD"))
		}
		dependent.DateOfBirth = dob
	}

	if err := db.DB.Save(&dependent).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to update dependent", err))
	}
	return c.JSON(dependent)
}

// DeleteDependent removes a dependent profile. Existing appointments
// keep their dependent reference through the soft delete.
func DeleteDependent(c *fiber.Ctx) error {
	patientID := c.Locals("userID").(uint)
	id := c.Params("id")

	var dependent models.Dependent
	if err := db.DB.First(&dependent, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("dependent not found"))
	}
	if dependent.PatientID != patientID {
		return utils.Fail(c, utils.Forbidden("dependent does not belong to you"))
	}

	if err := db.DB.Delete(&dependent).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to delete dependent", err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
