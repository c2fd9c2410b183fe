package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/utils"
)

// InterestsHandler serves the read-only interests view of categories that the
// app uses during contact onboarding.
type InterestsHandler struct {
	db *gorm.DB
}

// NewInterestsHandler constructs an InterestsHandler.
func NewInterestsHandler(db *gorm.DB) *InterestsHandler {
	return &InterestsHandler{db: db}
}

// List returns all active interests, newest first.
func (h *InterestsHandler) List(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		return h.Get(c)
	}

	var interests []models.Category
	if err := h.db.Where("deleted_at IS NULL").Order("created_at desc").Find(&interests).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_interests", "Interests retrieved successfully", interests)
}

// Get returns one interest by id.
func (h *InterestsHandler) Get(c *fiber.Ctx) error {
	interestID, err := uuid.Parse(c.Params("id", c.Query("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid interest id")
	}

	var interest models.Category
	if err := h.db.First(&interest, "id = ?", interestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Interest does not exist")
		}
		return err
	}

	if interest.DeletedAt != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Interest does not exist")
	}

	return utils.Respond(c, fiber.StatusOK, "get_interest", "Interest retrieved successfully", interest)
}
