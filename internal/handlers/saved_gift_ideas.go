package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/utils"
)

// SavedGiftIdeasHandler manages bookmarked gift ideas. There is no toggle
// here; ideas are created and removed explicitly.
type SavedGiftIdeasHandler struct {
	db *gorm.DB
}

// NewSavedGiftIdeasHandler constructs a SavedGiftIdeasHandler.
func NewSavedGiftIdeasHandler(db *gorm.DB) *SavedGiftIdeasHandler {
	return &SavedGiftIdeasHandler{db: db}
}

type savedGiftIdeaRequest struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// Save bookmarks a gift idea for the authenticated user.
func (h *SavedGiftIdeasHandler) Save(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req savedGiftIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Title == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a title")
	case req.Price == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a price")
	case req.Image == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide an image")
	case req.Link == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a link")
	}

	idea := models.SavedGiftIdea{
		Title:     req.Title,
		Price:     req.Price,
		Image:     req.Image,
		Link:      req.Link,
		CreatedBy: userID,
	}

	if err := h.db.Create(&idea).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "save_gift_idea", "Gift idea saved successfully", idea)
}

// List returns the user's active gift ideas, newest first.
func (h *SavedGiftIdeasHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var ideas []models.SavedGiftIdea
	if err := h.db.Where("created_by = ? AND deleted_at IS NULL", userID).
		Order("created_at desc").
		Find(&ideas).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_saved_gift_ideas", "Gift ideas fetched successfully", ideas)
}

// Update modifies a bookmarked idea.
func (h *SavedGiftIdeasHandler) Update(c *fiber.Ctx) error {
	idea, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	var req savedGiftIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Price != "" {
		updates["price"] = req.Price
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}
	if req.Link != "" {
		updates["link"] = req.Link
	}

	if err := h.db.Model(idea).Updates(updates).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "update_saved_gift_idea", "Gift idea updated successfully", fiber.Map{"id": idea.ID})
}

// Delete soft-deletes a bookmarked idea.
func (h *SavedGiftIdeasHandler) Delete(c *fiber.Ctx) error {
	idea, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := h.db.Model(idea).Update("deleted_at", &now).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "delete_saved_gift_idea", "Gift idea deleted successfully", fiber.Map{"id": idea.ID})
}

func (h *SavedGiftIdeasHandler) loadOwned(c *fiber.Ctx) (*models.SavedGiftIdea, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ideaID, err := uuid.Parse(c.Params("id", c.Query("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid gift idea id")
	}

	var idea models.SavedGiftIdea
	if err := h.db.First(&idea, "id = ?", ideaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Gift idea does not exist")
		}
		return nil, err
	}

	if idea.DeletedAt != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gift idea does not exist")
	}

	if idea.CreatedBy != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Gift idea does not belong to user")
	}

	return &idea, nil
}
