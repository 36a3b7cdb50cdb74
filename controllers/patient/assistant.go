package patient

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/assistant"
	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/scheduling"
	"github.com/medbook/clinic-app/utils"
)

// chatEngine is shared across requests; sessions inside it are keyed per
// user so conversations don't bleed into each other.
var chatEngine = &assistant.Engine{
	Specialities:        lookupSpecialities,
	DoctorsBySpeciality: lookupDoctors,
	NextAvailableSlot:   lookupNextSlot,
}

// Chat answers one assistant message for the logged-in patient.
func Chat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ChatInput struct {
		Message string `json:"message"`
	}
	input := new(ChatInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if strings.TrimSpace(input.Message) == "" {
		return utils.Fail(c, utils.Validation("message is required"))
	}

	reply := chatEngine.Respond(fmt.Sprintf("user:%d", userID), input.Message)
	return c.JSON(reply)
}

// ResetChat starts the patient's conversation over.
func ResetChat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	chatEngine.Reset(fmt.Sprintf("user:%d", userID))
	return c.JSON(fiber.Map{"message": "Conversation reset"})
}

func lookupSpecialities() []string {
	var specialities []string
	db.DB.Model(&models.User{}).
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ? AND users.is_active = ? AND users.speciality <> ''", models.RoleDoctor, true).
		Distinct().
		Order("speciality asc").
		Pluck("speciality", &specialities)
	return specialities
}

func lookupDoctors(speciality string) []string {
	var doctors []models.User
	db.DB.Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ? AND users.is_active = ? AND users.speciality ILIKE ?",
			models.RoleDoctor, true, speciality).
		Find(&doctors)

	names := make([]string, 0, len(doctors))
	for i := range doctors {
		names = append(names, doctors[i].FullName())
	}
	return names
}

// lookupNextSlot scans the coming week for the doctor's first open slot.
func lookupNextSlot(doctorName string) (string, bool) {
	var doctors []models.User
	db.DB.Preload("Availability").
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ? AND users.is_active = ?", models.RoleDoctor, true).
		Find(&doctors)

	var doctor *models.User
	for i := range doctors {
		if strings.EqualFold(doctors[i].FullName(), strings.TrimSpace(doctorName)) {
			doctor = &doctors[i]
			break
		}
	}
	if doctor == nil {
		return "", false
	}

	loc := utils.ClinicLocation()
	now := time.Now().In(loc)
	for offset := 0; offset < 7; offset++ {
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, offset)
		booked, err := db.BookedIntervals(doctor.ID, day)
		if err != nil {
			return "", false
		}
		grid, err := scheduling.Resolve(models.Windows(doctor.Availability), scheduling.SlotPolicy{}, day, now, booked)
		if err != nil {
			return "", false
		}
		for _, slot := range grid.Slots {
			if slot.Available {
				return fmt.Sprintf("%s %s", day.Format("Monday Jan 2"), slot.Label()), true
			}
		}
	}
	return "", false
}
