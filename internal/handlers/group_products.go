package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/utils"
)

// GroupProductsHandler manages gifts inside group wishlists, including the
// reservation flow.
type GroupProductsHandler struct {
	db    *gorm.DB
	lists *GroupListsHandler
}

// NewGroupProductsHandler constructs a GroupProductsHandler.
func NewGroupProductsHandler(db *gorm.DB) *GroupProductsHandler {
	return &GroupProductsHandler{db: db, lists: NewGroupListsHandler(db)}
}

type groupProductRequest struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Quantity    *int     `json:"quantity"`
	ReservedBy  *string  `json:"reservedBy"`
}

// Create adds a product to a wishlist. New products are never born reserved.
func (h *GroupProductsHandler) Create(c *fiber.Ctx) error {
	_, list, userID, err := h.lists.loadList(c)
	if err != nil {
		return err
	}

	var req groupProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Name == "":
		return fiber.NewError(fiber.StatusBadRequest, "Name is required")
	case req.URL == "":
		return fiber.NewError(fiber.StatusBadRequest, "Url is required")
	case req.Price == nil:
		return fiber.NewError(fiber.StatusBadRequest, "Price is required")
	case req.Description == "":
		return fiber.NewError(fiber.StatusBadRequest, "Description is required")
	case req.Image == "":
		return fiber.NewError(fiber.StatusBadRequest, "Image is required")
	case req.Quantity == nil || *req.Quantity <= 0:
		return fiber.NewError(fiber.StatusBadRequest, "Quantity is required")
	}

	product := models.GroupProduct{
		Name:        req.Name,
		URL:         req.URL,
		Price:       *req.Price,
		Description: req.Description,
		Image:       req.Image,
		Quantity:    *req.Quantity,
		ListID:      list.ID,
		GroupID:     list.GroupID,
		CreatedBy:   userID,
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_group_product", "Group Product created successfully", product)
}

// List returns the wishlist's active products, newest first.
func (h *GroupProductsHandler) List(c *fiber.Ctx) error {
	_, list, _, err := h.lists.loadList(c)
	if err != nil {
		return err
	}

	products, err := h.lists.activeProducts(list.ID)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_group_products", "Group Products retrieved successfully", products)
}

// Get returns one product by id.
func (h *GroupProductsHandler) Get(c *fiber.Ctx) error {
	product, _, err := h.loadProduct(c)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_group_product", "Group Product retrieved successfully", product)
}

// Update modifies product fields. Reserving an already-reserved product is
// rejected; clearing a reservation requires an explicit null.
func (h *GroupProductsHandler) Update(c *fiber.Ctx) error {
	product, _, err := h.loadProduct(c)
	if err != nil {
		return err
	}

	var req groupProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.URL != "" {
		updates["url"] = req.URL
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.ReservedBy != nil {
		if *req.ReservedBy == "" {
			updates["reserved_by"] = nil
		} else {
			if product.ReservedBy != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Product is already reserved")
			}
			reserver, err := uuid.Parse(*req.ReservedBy)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid reservedBy id")
			}
			updates["reserved_by"] = reserver
		}
	}

	if err := h.db.Model(product).Updates(updates).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "update_group_product", "Group Product updated successfully", fiber.Map{"id": product.ID})
}

// Delete soft-deletes a product.
func (h *GroupProductsHandler) Delete(c *fiber.Ctx) error {
	product, _, err := h.loadProduct(c)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := h.db.Model(product).Update("deleted_at", &now).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "delete_group_product", "Group Product deleted successfully", fiber.Map{"id": product.ID})
}

// loadProduct resolves group membership, the list and the product from the
// path ids.
func (h *GroupProductsHandler) loadProduct(c *fiber.Ctx) (*models.GroupProduct, uuid.UUID, error) {
	_, list, userID, err := h.lists.loadList(c)
	if err != nil {
		return nil, uuid.Nil, err
	}

	productID, err := uuid.Parse(c.Params("productId", c.Query("productId")))
	if err != nil {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var product models.GroupProduct
	if err := h.db.First(&product, "id = ? AND list_id = ?", productID, list.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Group Product doesn't exist")
		}
		return nil, uuid.Nil, err
	}

	if product.DeletedAt != nil {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Group Product doesn't exist")
	}

	return &product, userID, nil
}
