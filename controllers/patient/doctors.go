package patient

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/redis"
	"github.com/medbook/clinic-app/scheduling"
	"github.com/medbook/clinic-app/utils"
)

// GetAllDoctors lists active doctors, optionally filtered by speciality
// or a name search, paginated.
func GetAllDoctors(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := db.DB.Preload("Role").
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ? AND users.is_active = ?", models.RoleDoctor, true)

	if speciality := c.Query("speciality"); speciality != "" {
		query = query.Where("users.speciality ILIKE ?", speciality)
	}
	if q := c.Query("q"); q != "" {
		like := fmt.Sprintf("%%%s%%", q)
		query = query.Where("(users.first_name ILIKE ? OR users.last_name ILIKE ?)", like, like)
	}

	var doctors []models.User
	if err := query.Limit(limit).Offset(offset).Find(&doctors).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch doctors", err))
	}

	var count int64
	db.DB.Model(&models.User{}).
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ? AND users.is_active = ?", models.RoleDoctor, true).
		Count(&count)

	for i := range doctors {
		doctors[i].Sanitize()
	}

	return c.JSON(fiber.Map{
		"doctors": doctors,
		"total":   count,
		"page":    page,
		"limit":   limit,
	})
}

// GetDoctorDetails returns one doctor with their weekly availability.
func GetDoctorDetails(c *fiber.Ctx) error {
	id := c.Params("id")

	var doctor models.User
	if err := db.DB.Preload("Role").Preload("Availability").First(&doctor, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("doctor not found"))
	}
	if doctor.Role.Name != models.RoleDoctor {
		return utils.Fail(c, utils.NotFound("user is not a doctor"))
	}

	doctor.Sanitize()
	return c.JSON(doctor)
}

// GetSpecialities lists distinct specialities with at least one active
// doctor.
func GetSpecialities(c *fiber.Ctx) error {
	var specialities []string
	err := db.DB.Model(&models.User{}).
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ? AND users.is_active = ? AND users.speciality <> ''", models.RoleDoctor, true).
		Distinct().
		Order("speciality asc").
		Pluck("speciality", &specialities).Error
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch specialities", err))
	}
	return c.JSON(fiber.Map{"specialities": specialities})
}

// GetAvailableSlots computes the bookable grid for a doctor on a date.
// Grids are served from the cache when fresh; bookings and cancellations
// invalidate the day.
func GetAvailableSlots(c *fiber.Ctx) error {
	doctorID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.Fail(c, utils.Validation("invalid doctor ID"))
	}

	loc := utils.ClinicLocation()
	dateStr := c.Query("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return utils.Fail(c, utils.Validation("invalid date, use YYYY-MM-DD"))
	}

	policy, perr := scheduling.PolicyForMinutes(c.QueryInt("slot_minutes"))
	if perr != nil {
		return utils.Fail(c, utils.Validation(perr.Error()))
	}
	minutes := slotMinutes(policy)

	if grid, ok := redis.GetSlotGrid(uint(doctorID), dateStr, minutes); ok {
		return c.JSON(slotPayload(grid, uint(doctorID), dateStr))
	}

	var doctor models.User
	if err := db.DB.Preload("Role").Preload("Availability").First(&doctor, doctorID).Error; err != nil {
		return utils.Fail(c, utils.NotFound("doctor not found"))
	}
	if doctor.Role.Name != models.RoleDoctor || !doctor.IsActive {
		return utils.Fail(c, utils.NotFound("doctor not found"))
	}

	booked, err := db.BookedIntervals(uint(doctorID), date)
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch appointments", err))
	}

	grid, err := scheduling.Resolve(models.Windows(doctor.Availability), policy, date, time.Now().In(loc), booked)
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to compute slots", err))
	}

	redis.SetSlotGrid(uint(doctorID), dateStr, minutes, grid)
	return c.JSON(slotPayload(grid, uint(doctorID), dateStr))
}

// slotMinutes is the cache-key granularity of a policy.
func slotMinutes(policy scheduling.SlotPolicy) int {
	if policy.SlotLength == 0 {
		return int(scheduling.DefaultSlotLength / time.Minute)
	}
	return int(policy.SlotLength / time.Minute)
}

func slotPayload(grid scheduling.Grid, doctorID uint, date string) fiber.Map {
	payload := fiber.Map{
		"doctor_id": doctorID,
		"date":      date,
		"outcome":   grid.Outcome,
		"slots":     grid.Slots,
	}
	switch grid.Outcome {
	case scheduling.OutcomeNoAvailability:
		payload["message"] = "Doctor has no configured availability on this day"
	case scheduling.OutcomeFullyBooked:
		payload["message"] = "Doctor is fully booked on this day"
	}
	return payload
}
