package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/config"
	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/services"
	"github.com/example/giftola/internal/utils"
)

// AuthHandler bundles dependencies for user authentication endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
	otp *services.OTPService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, otp *services.OTPService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, otp: otp}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unverified account and mails a verification OTP.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Name == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a name")
	case req.Email == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an email")
	case req.Password == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a password")
	}

	var existing models.User
	if err := h.db.Where("email = ? AND deleted_at IS NULL", req.Email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Verified:     false,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	if err := h.otp.Issue(user.ID, user.Email, user.Name, services.OTPVerifyAccount); err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "register_user",
		"User registered successfully. Enter OTP to verify your email", user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a verified user. Unverified accounts get a fresh OTP
// and a distinguishing response instead of a token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Email == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an email")
	case req.Password == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a password")
	}

	var user models.User
	if err := h.db.Where("email = ? AND deleted_at IS NULL", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email or password")
		}
		return err
	}

	if !user.Verified {
		if err := h.otp.Issue(user.ID, user.Email, user.Name, services.OTPVerifyAccount); err != nil {
			return err
		}
		return utils.Respond(c, fiber.StatusBadRequest, "unverified_email",
			"Email not verified. Enter OTP to verify your email", nil)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid email or password")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Name, "user", h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return utils.Respond(c, fiber.StatusOK, "login_user", "User logged in successfully", fiber.Map{
		"id":    user.ID,
		"user":  user,
		"token": token,
	})
}

type verifyOtpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOtp consumes the newest OTP for the email and flips the account to
// verified. Both writes commit in one transaction. First-time verification
// also seeds the onboarding demo contact and event.
func (h *AuthHandler) VerifyOtp(c *fiber.Ctx) error {
	var req verifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Email == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an email")
	case req.OTP == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an OTP")
	}

	var user models.User
	err := h.db.Transaction(func(tx *gorm.DB) error {
		id, err := h.otp.ValidateAndConsume(tx, req.Email, req.OTP)
		if err != nil {
			return err
		}
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		// An already-verified account must not re-run the onboarding seed.
		// Rolling back also preserves the code for its real purpose, such as
		// a pending password reset.
		if user.Verified {
			return fiber.NewError(fiber.StatusBadRequest, "Email already verified")
		}
		return tx.Model(&models.User{}).Where("id = ?", id).Update("verified", true).Error
	})
	if err != nil {
		return mapOTPError(err)
	}
	user.Verified = true

	if err := h.seedDemoData(user.ID); err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Name, "user", h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return utils.Respond(c, fiber.StatusOK, "verify_otp", "Account verified successfully", fiber.Map{
		"id":    user.ID,
		"user":  user,
		"token": token,
	})
}

type emailRequest struct {
	Email string `json:"email"`
}

// ResendOtp re-issues a verification code for a not-yet-verified account.
func (h *AuthHandler) ResendOtp(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an email")
	}

	var user models.User
	if err := h.db.Where("email = ? AND deleted_at IS NULL", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email")
		}
		return err
	}

	if user.Verified {
		return fiber.NewError(fiber.StatusBadRequest, "Email already verified")
	}

	if err := h.otp.Issue(user.ID, user.Email, user.Name, services.OTPVerifyAccount); err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "resend_otp", "OTP sent successfully", nil)
}

// ForgotPassword mails a password-reset OTP to an existing account.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an email")
	}

	var user models.User
	if err := h.db.Where("email = ? AND deleted_at IS NULL", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email")
		}
		return err
	}

	if err := h.otp.Issue(user.ID, user.Email, user.Name, services.OTPResetPassword); err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "forgot_password", "OTP sent successfully", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword consumes a valid OTP and overwrites the password hash in the
// same transaction.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Email == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an email")
	case req.OTP == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an OTP")
	case req.NewPassword == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a new password")
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		userID, err := h.otp.ValidateAndConsume(tx, req.Email, req.OTP)
		if err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
	})
	if err != nil {
		return mapOTPError(err)
	}

	return utils.Respond(c, fiber.StatusOK, "reset_password", "Password reset successfully", nil)
}

type editProfileRequest struct {
	Name         string  `json:"name"`
	ProfileImage *string `json:"profileImage"`
}

// EditProfile updates the authenticated user's profile fields.
func (h *AuthHandler) EditProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req editProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = *req.ProfileImage
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "edit_profile", "Profile updated successfully", nil)
}

// seedDemoData gives a freshly verified user one sample contact and one
// sample event dated ten days out, so the app opens with content.
func (h *AuthHandler) seedDemoData(userID uuid.UUID) error {
	contact := models.Contact{
		Name:               "Sam Sample",
		Relationship:       "Friend",
		DOB:                "1995-06-15",
		Preferences:        []string{"books", "coffee"},
		SelectedCategories: []string{"Reading", "Outdoors"},
		CreatedBy:          userID,
	}
	if err := h.db.Create(&contact).Error; err != nil {
		return err
	}

	event := models.Event{
		Title:         "Sam's Birthday",
		Date:          time.Now().AddDate(0, 0, 10),
		Description:   "A sample event to get you started",
		Venue:         "Sam's place",
		CoverImage:    "",
		PreferredCost: 50,
		CreatedFor:    contact.ID,
		Status:        "upcoming",
		CreatedBy:     userID,
	}
	return h.db.Create(&event).Error
}

// mapOTPError converts OTP validation failures into client errors.
func mapOTPError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidOTP):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, services.ErrExpiredOTP):
		return fiber.NewError(fiber.StatusBadRequest, "OTP expired")
	default:
		return err
	}
}
