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

// CategoriesHandler manages product categories used as interest tags.
type CategoriesHandler struct {
	db *gorm.DB
}

// NewCategoriesHandler constructs a CategoriesHandler.
func NewCategoriesHandler(db *gorm.DB) *CategoriesHandler {
	return &CategoriesHandler{db: db}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Create adds a category; active names are unique.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Category name is required")
	}

	var existing models.Category
	if err := h.db.Where("name = ? AND deleted_at IS NULL", req.Name).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Category with the same name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CreatedBy:   userID,
	}

	if err := h.db.Create(&category).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_category", "Category created successfully", category)
}

// List returns all active categories, newest first.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Where("deleted_at IS NULL").Order("created_at desc").Find(&categories).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_categories", "Categories retrieved successfully", categories)
}

// Get returns one category by id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.load(c)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_category", "Category retrieved successfully", category)
}

// Update modifies category fields; only the creator may update.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	category, err := h.load(c)
	if err != nil {
		return err
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if category.CreatedBy != userID {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to update this category")
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}

	if err := h.db.Model(category).Updates(updates).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "update_category", "Category updated successfully", fiber.Map{"id": category.ID})
}

// Delete soft-deletes a category; only the creator may delete.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	category, err := h.load(c)
	if err != nil {
		return err
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if category.CreatedBy != userID {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to delete this category")
	}

	now := time.Now()
	if err := h.db.Model(category).Update("deleted_at", &now).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "delete_category", "Category deleted successfully", fiber.Map{"id": category.ID})
}

func (h *CategoriesHandler) load(c *fiber.Ctx) (*models.Category, error) {
	categoryID, err := uuid.Parse(c.Params("id", c.Query("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Category does not exist")
		}
		return nil, err
	}

	if category.DeletedAt != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Category does not exist")
	}

	return &category, nil
}
