package controllers

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/models"
	"github.com/medbook/clinic-app/redis"
	"github.com/medbook/clinic-app/utils"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "insecure_dev_secret"
	}
	return []byte(secret)
}

func signToken(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// Register handles patient self-registration. Doctor and admin accounts
// are created by administrators.
func Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
	}

	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}

	if err := utils.Required(map[string]string{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"email":      input.Email,
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

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to hash password", err))
	}

	var role models.Role
	if err := db.DB.Where("name = ?", models.RolePatient).First(&role).Error; err != nil {
		return utils.Fail(c, utils.Backend("patient role not seeded", err))
	}

	user := models.User{
		HumanID:   utils.HumanID("PAT"),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  string(hashed),
		RoleID:    role.ID,
		Role:      role,
		IsActive:  true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to create user", err))
	}

	user.Sanitize()
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login authenticates by email and password and issues access and
// refresh tokens.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}

	var user models.User
	if db.DB.Preload("Role").Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return utils.Fail(c, utils.Unauthorized("invalid credentials"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Fail(c, utils.Unauthorized("invalid credentials"))
	}
	if !user.IsActive {
		return utils.Fail(c, utils.Forbidden("account is deactivated"))
	}

	token, err := signToken(jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role.Name,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to generate token", err))
	}

	refreshToken, err := signToken(jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to generate refresh token", err))
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user": fiber.Map{
			"id":       user.ID,
			"human_id": user.HumanID,
			"name":     user.FullName(),
			"email":    user.Email,
			"role":     user.Role.Name,
		},
	})
}

// Me returns the authenticated user's profile.
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
		return utils.Fail(c, utils.NotFound("user not found"))
	}
	user.Sanitize()
	return c.JSON(user)
}

// Logout is a no-op for stateless JWTs; the client discards its tokens.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

// RefreshToken mints a new access token from a valid refresh token.
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(RefreshRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return utils.Fail(c, utils.Unauthorized("invalid refresh token"))
	}

	claims := token.Claims.(jwt.MapClaims)

	var user models.User
	if err := db.DB.Preload("Role").First(&user, uint(claims["id"].(float64))).Error; err != nil {
		return utils.Fail(c, utils.Unauthorized("user not found"))
	}
	if !user.IsActive {
		return utils.Fail(c, utils.Forbidden("account is deactivated"))
	}

	newToken, err := signToken(jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role.Name,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to generate token", err))
	}
	return c.JSON(fiber.Map{"token": newToken})
}

// RequestPasswordReset mails a one-time code. The response never reveals
// whether the address exists.
func RequestPasswordReset(c *fiber.Ctx) error {
	type ResetRequest struct {
		Email string `json:"email"`
	}

	req := new(ResetRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}

	var user models.User
	if db.DB.Where("email = ?", req.Email).First(&user).RowsAffected > 0 {
		otp := utils.GenerateOTP()
		if err := redis.StoreResetOTP(user.Email, otp); err != nil {
			return utils.Fail(c, utils.Backend("failed to store reset code", err))
		}
		utils.SendEmailAsync(user.Email, "Password Reset Code", fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your password reset code is <strong>%s</strong>. It expires in 10 minutes.</p>
			<p>If you did not request this, you can ignore this email.</p>
		`, user.FullName(), otp))
	}

	return c.JSON(fiber.Map{"message": "If the address is registered, a reset code has been sent"})
}

// ResetPassword verifies the one-time code and sets the new password.
func ResetPassword(c *fiber.Ctx) error {
	type ResetInput struct {
		Email    string `json:"email"`
		OTP      string `json:"otp"`
		Password string `json:"password"`
	}

	input := new(ResetInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("cannot parse JSON body"))
	}
	if err := utils.ValidPassword(input.Password); err != nil {
		return utils.Fail(c, err)
	}
	if !redis.CheckResetOTP(input.Email, input.OTP) {
		return utils.Fail(c, utils.Unauthorized("invalid or expired reset code"))
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return utils.Fail(c, utils.NotFound("user not found"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Fail(c, utils.Backend("failed to hash password", err))
	}
	if err := db.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return utils.Fail(c, utils.Backend("failed to update password", err))
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}
