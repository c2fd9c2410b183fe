package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/utils"
)

// NotificationsHandler manages in-app notifications.
type NotificationsHandler struct {
	db *gorm.DB
}

// NewNotificationsHandler constructs a NotificationsHandler.
func NewNotificationsHandler(db *gorm.DB) *NotificationsHandler {
	return &NotificationsHandler{db: db}
}

type notificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Create records a notification for the authenticated user.
func (h *NotificationsHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req notificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Title == "":
		return fiber.NewError(fiber.StatusBadRequest, "Title is required")
	case req.Message == "":
		return fiber.NewError(fiber.StatusBadRequest, "Message is required")
	case req.Type == "":
		return fiber.NewError(fiber.StatusBadRequest, "Type is required")
	}

	notification := models.Notification{
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		UserID:  userID,
	}

	if err := h.db.Create(&notification).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_notification", "Notification created successfully", notification)
}

// List returns the user's active notifications, newest first, paginated.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pagination := utils.ParsePagination(c)

	var notifications []models.Notification
	if err := h.db.Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("created_at desc").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&notifications).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_notifications", "Notifications retrieved successfully", notifications)
}

// ReadAll marks every unread notification read in one atomic commit.
func (h *NotificationsHandler) ReadAll(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	now := time.Now()
	err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Notification{}).
			Where("user_id = ? AND read_at IS NULL AND deleted_at IS NULL", userID).
			Update("read_at", &now).Error
	})
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "read_notifications", "Notifications read successfully", nil)
}
