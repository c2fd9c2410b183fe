package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/services"
	"github.com/example/giftola/internal/utils"
)

// GeneralHandler covers uncategorized endpoints.
type GeneralHandler struct {
	db   *gorm.DB
	mail *services.MailService
}

// NewGeneralHandler constructs a GeneralHandler.
func NewGeneralHandler(db *gorm.DB, mail *services.MailService) *GeneralHandler {
	return &GeneralHandler{db: db, mail: mail}
}

// AppInvite mails a join-the-app invitation to someone without an account.
func (h *GeneralHandler) AppInvite(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide email")
	}

	var existing models.User
	if err := h.db.Where("email = ? AND deleted_at IS NULL", email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	invitedBy := middleware.GetCurrentUserName(c)
	if err := h.mail.SendAppInvite(email, invitedBy); err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "create_app_invite", "Invite sent successfully", nil)
}
