package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/config"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/services"
	"github.com/example/giftola/internal/utils"
)

// AdminHandler covers dashboard authentication and the settings singleton.
type AdminHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	settings *services.SettingsService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB, cfg *config.Config, settings *services.SettingsService) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, settings: settings}
}

type adminRegisterRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	ProfileImage *string `json:"profileImage"`
}

// Register creates an admin account, verified at creation.
func (h *AdminHandler) Register(c *fiber.Ctx) error {
	var req adminRegisterRequest
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

	var existing models.Admin
	if err := h.db.Where("email = ? AND deleted_at IS NULL", req.Email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Admin already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	admin := models.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Verified:     true,
		ProfileImage: req.ProfileImage,
	}

	if err := h.db.Create(&admin).Error; err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, admin.ID, admin.Name, "admin", h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return utils.Respond(c, fiber.StatusOK, "register_admin", "Admin registered successfully", fiber.Map{
		"id":    admin.ID,
		"admin": admin,
		"token": token,
	})
}

// Login authenticates an admin.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
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

	var admin models.Admin
	if err := h.db.Where("email = ? AND deleted_at IS NULL", req.Email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email or password")
		}
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid email or password")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, admin.ID, admin.Name, "admin", h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return utils.Respond(c, fiber.StatusOK, "login_admin", "Admin logged in successfully", fiber.Map{
		"id":    admin.ID,
		"admin": admin,
		"token": token,
	})
}

// GetSettings returns the settings singleton.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Settings does not exist")
		}
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_settings", "Settings retrieved successfully", settings)
}

type settingsRequest struct {
	BrevoKey       *string `json:"BREVO_KEY"`
	RainforestKey  *string `json:"RAINFOREST_API_KEY"`
	GPTKey         *string `json:"GPT_API_KEY"`
	AffiliateTag   *string `json:"AFFILIATE_TAG"`
	GiftCount      *int    `json:"NO_OF_GIFTS"`
	PromptTemplate *string `json:"PROMPT_TEMPLATE"`
}

// UpdateSettings applies partial updates and invalidates the settings cache.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.BrevoKey != nil {
		updates["brevo_key"] = *req.BrevoKey
	}
	if req.RainforestKey != nil {
		updates["rainforest_key"] = *req.RainforestKey
	}
	if req.GPTKey != nil {
		updates["gpt_key"] = *req.GPTKey
	}
	if req.AffiliateTag != nil {
		updates["affiliate_tag"] = *req.AffiliateTag
	}
	if req.GiftCount != nil {
		updates["gift_count"] = *req.GiftCount
	}
	if req.PromptTemplate != nil {
		updates["prompt_template"] = *req.PromptTemplate
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.settings.Update(updates); err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "update_settings", "Settings updated successfully", fiber.Map{"id": models.SettingsID})
}

// ResetSettings restores the default settings row.
func (h *AdminHandler) ResetSettings(c *fiber.Ctx) error {
	if err := h.settings.Reset(); err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "reset_settings", "Settings reset successfully", fiber.Map{"id": models.SettingsID})
}
