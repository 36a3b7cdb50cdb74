package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/utils"
)

// GetUsers lists users filtered by ?role= and ?q=, paginated.
func GetUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := db.DB.Preload("Role").Joins("JOIN roles ON users.role_id = roles.id")
	if role := c.Query("role"); role != "" {
		query = query.Where("roles.name = ?", role)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("users.first_name ILIKE ? OR users.last_name ILIKE ? OR users.email ILIKE ? OR users.human_id ILIKE ?",
			like, like, like, like)
	}

	var users []models.User
	if err := query.Limit(limit).Offset(offset).Order("users.id asc").Find(&users).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to fetch users", err))
	}
	for i := range users {
		users[i].Sanitize()
	}

	return c.JSON(fiber.Map{
		"users": users,
		"page":  page,
		"limit": limit,
	})
}

// CreateDoctor provisions a doctor account with a DOC human ID.
func CreateDoctor(c *fiber.Ctx) error {
	type DoctorInput struct {
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Speciality string `json:"speciality"`
		Password   string `json:"password"`
	}

	input := new(DoctorInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if err := utils.Required(map[string]string{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"email":      input.Email,
		"speciality": input.Speciality,
		"password":   input.Password,
	}); err != nil {
		return utils.Fail(c, err)
	}
	if err := utils.ValidEmail(input.Email); err != nil {
		return utils.Fail(c, err)
	}
	if err := utils.ValidPassword(input.Password); err != nil {
		return utils.Fail(c, err)
	}

	var existing models.User
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return utils.Fail(c, utils.Conflict("user with this email already exists"))
	}

	var role models.Role
	if err := db.DB.Where("name = ?", models.RoleDoctor).First(&role).Error; err != nil {
		return utils.Fail(c, utils.Backend("doctor role not seeded", err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to hash password", err))
	}

	doctor := models.User{
		HumanID:    utils.HumanID("DOC"),
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		Speciality: input.Speciality,
		Password:   string(hashed),
		RoleID:     role.ID,
		IsActive:   true,
	}
	if err := db.DB.Create(&doctor).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to create doctor", err))
	}

	utils.SendEmailAsync(doctor.Email, "Your Doctor Account", `
		<p>An account has been created for you. Sign in with this email and the
		password provided by your administrator, then set your weekly availability.</p>
	`)

	doctor.Sanitize()
	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// UpdateUser edits profile fields. Role and password are out of scope
// here; roles change through the RBAC endpoints, passwords through reset.
func UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("user not found"))
	}

	updateData := make(map[string]interface{})
	if err := c.BodyParser(&updateData); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	for _, field := range []string{"id", "ID", "password", "role", "Role", "role_id", "human_id", "email"} {
		delete(updateData, field)
	}

	if err := db.DB.Model(&user).Updates(updateData).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to update user", err))
	}

	db.DB.Preload("Role").First(&user, user.ID)
	user.Sanitize()
	return c.JSON(user)
}

// SetUserActive deactivates or reactivates an account. Users are never
// hard-deleted.
func SetUserActive(c *fiber.Ctx) error {
	id := c.Params("id")

	type ActiveInput struct {
		IsActive bool `json:"is_active"`
	}
	input := new(ActiveInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("user not found"))
	}

	if err := db.DB.Model(&user).Update("is_active", input.IsActive).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to update user", err))
	}

	user.Sanitize()
	return c.JSON(user)
}
