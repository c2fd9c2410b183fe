package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/utils"
)

// SavedGiftsHandler manages bookmarked products.
type SavedGiftsHandler struct {
	db *gorm.DB
}

// NewSavedGiftsHandler constructs a SavedGiftsHandler.
func NewSavedGiftsHandler(db *gorm.DB) *SavedGiftsHandler {
	return &SavedGiftsHandler{db: db}
}

type saveGiftRequest struct {
	Title  string  `json:"title"`
	ASIN   string  `json:"asin"`
	Price  string  `json:"price"`
	Image  string  `json:"image"`
	Link   string  `json:"link"`
	Rating float64 `json:"rating"`
}

// Save toggles a bookmark: saving an ASIN the user already saved removes it.
func (h *SavedGiftsHandler) Save(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req saveGiftRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Title == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a title")
	case req.ASIN == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an ASIN")
	case req.Price == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a price")
	case req.Image == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an image")
	case req.Link == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a link")
	}

	var existing models.SavedGift
	err := h.db.Where("asin = ? AND created_by = ?", req.ASIN, userID).First(&existing).Error
	if err == nil {
		if err := h.db.Delete(&models.SavedGift{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
		return utils.Respond(c, fiber.StatusOK, "unsave_gift", "Gift unsaved successfully", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	gift := models.SavedGift{
		Title:     req.Title,
		ASIN:      req.ASIN,
		Price:     req.Price,
		Image:     req.Image,
		Link:      req.Link,
		Rating:    req.Rating,
		CreatedBy: userID,
	}

	if err := h.db.Create(&gift).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "save_gift", "Gift saved successfully", gift)
}

// List returns the user's active saved gifts, newest first, paginated.
func (h *SavedGiftsHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pagination := utils.ParsePagination(c)

	var gifts []models.SavedGift
	if err := h.db.Where("created_by = ? AND deleted_at IS NULL", userID).
		Order("created_at desc").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&gifts).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_saved_gifts", "Saved gifts retrieved successfully", gifts)
}
