package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/services"
	"github.com/example/giftola/internal/utils"
)

// ProductsHandler serves gift recommendations.
type ProductsHandler struct {
	db              *gorm.DB
	recommendations *services.RecommendationService
}

// NewProductsHandler constructs a ProductsHandler.
func NewProductsHandler(db *gorm.DB, recommendations *services.RecommendationService) *ProductsHandler {
	return &ProductsHandler{db: db, recommendations: recommendations}
}

// Get returns gift suggestions either for an event (cached pipeline) or for
// a category tag (direct search). Exactly one of eventId/tag is required,
// validated before any collaborator is called.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	eventID := c.Query("eventId")
	tag := c.Query("tag")

	if eventID == "" && tag == "" {
		return fiber.NewError(fiber.StatusBadRequest, "eventId or tag is required")
	}
	if eventID != "" && tag != "" {
		return fiber.NewError(fiber.StatusBadRequest, "eventId and tag cannot be used together")
	}

	if tag != "" {
		minPrice, _ := strconv.Atoi(c.Query("minPrice", "0"))
		maxPrice, _ := strconv.Atoi(c.Query("maxPrice", "0"))

		results, err := h.recommendations.GetByTag(c.Context(), tag, minPrice, maxPrice)
		if err != nil {
			return err
		}
		return utils.Respond(c, fiber.StatusOK, "get_products", "Products retrieved successfully", results)
	}

	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(eventID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	var event models.Event
	if err := h.db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Event does not exist")
		}
		return err
	}
	if event.DeletedAt != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Event does not exist")
	}
	if event.CreatedBy != userID {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to view this event")
	}

	var contact models.Contact
	if err := h.db.First(&contact, "id = ?", event.CreatedFor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Contact does not exist")
		}
		return err
	}

	giftList, _, err := h.recommendations.GetForEvent(c.Context(), &event, &contact)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_products", "Products retrieved successfully", giftList)
}
