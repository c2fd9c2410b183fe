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

// GroupListsHandler manages shared wishlists inside groups.
type GroupListsHandler struct {
	db *gorm.DB
}

// NewGroupListsHandler constructs a GroupListsHandler.
func NewGroupListsHandler(db *gorm.DB) *GroupListsHandler {
	return &GroupListsHandler{db: db}
}

type groupListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// groupListView is a list with its active products attached.
type groupListView struct {
	models.GroupList
	Products []models.GroupProduct `json:"products"`
}

// Create adds a wishlist to a group the user belongs to.
func (h *GroupListsHandler) Create(c *fiber.Ctx) error {
	group, userID, err := loadMemberGroup(h.db, c)
	if err != nil {
		return err
	}

	var req groupListRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Name == "":
		return fiber.NewError(fiber.StatusBadRequest, "Name is required")
	case req.Description == "":
		return fiber.NewError(fiber.StatusBadRequest, "Description is required")
	case req.Image == "":
		return fiber.NewError(fiber.StatusBadRequest, "Image is required")
	}

	list := models.GroupList{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		GroupID:     group.ID,
		CreatedBy:   userID,
	}

	if err := h.db.Create(&list).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_group_list", "List created successfully", list)
}

// List returns the group's active wishlists, newest first, each with its
// products attached.
func (h *GroupListsHandler) List(c *fiber.Ctx) error {
	group, _, err := loadMemberGroup(h.db, c)
	if err != nil {
		return err
	}

	var lists []models.GroupList
	if err := h.db.Where("group_id = ? AND deleted_at IS NULL", group.ID).
		Order("created_at desc").
		Find(&lists).Error; err != nil {
		return err
	}

	views := make([]groupListView, 0, len(lists))
	for _, list := range lists {
		products, err := h.activeProducts(list.ID)
		if err != nil {
			return err
		}
		views = append(views, groupListView{GroupList: list, Products: products})
	}

	return utils.Respond(c, fiber.StatusOK, "get_group_lists", "Group Lists fetched successfully", views)
}

// Get returns one wishlist with its products.
func (h *GroupListsHandler) Get(c *fiber.Ctx) error {
	_, list, _, err := h.loadList(c)
	if err != nil {
		return err
	}

	products, err := h.activeProducts(list.ID)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_group_list", "Group List fetched successfully",
		groupListView{GroupList: *list, Products: products})
}

// Update modifies wishlist fields; only the creator may update.
func (h *GroupListsHandler) Update(c *fiber.Ctx) error {
	_, list, userID, err := h.loadList(c)
	if err != nil {
		return err
	}

	if list.CreatedBy != userID {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to update this list")
	}

	var req groupListRequest
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

	if err := h.db.Model(list).Updates(updates).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "update_group_list", "Group List updated successfully", fiber.Map{"id": list.ID})
}

// Delete soft-deletes a wishlist; only the creator may delete.
func (h *GroupListsHandler) Delete(c *fiber.Ctx) error {
	_, list, userID, err := h.loadList(c)
	if err != nil {
		return err
	}

	if list.CreatedBy != userID {
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to delete this list")
	}

	now := time.Now()
	if err := h.db.Model(list).Update("deleted_at", &now).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "delete_group_list", "Group List deleted successfully", fiber.Map{"id": list.ID})
}

func (h *GroupListsHandler) activeProducts(listID uuid.UUID) ([]models.GroupProduct, error) {
	products := make([]models.GroupProduct, 0)
	err := h.db.Where("list_id = ? AND deleted_at IS NULL", listID).
		Order("created_at desc").
		Find(&products).Error
	return products, err
}

// loadList resolves the group (with membership check) and the list from the
// path ids.
func (h *GroupListsHandler) loadList(c *fiber.Ctx) (*models.Group, *models.GroupList, uuid.UUID, error) {
	group, userID, err := loadMemberGroup(h.db, c)
	if err != nil {
		return nil, nil, uuid.Nil, err
	}

	listID, err := uuid.Parse(c.Params("listId", c.Query("listId")))
	if err != nil {
		return nil, nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid list id")
	}

	var list models.GroupList
	if err := h.db.First(&list, "id = ? AND group_id = ?", listID, group.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "No such Group List found")
		}
		return nil, nil, uuid.Nil, err
	}

	if list.DeletedAt != nil {
		return nil, nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "No such Group List found")
	}

	return group, &list, userID, nil
}

// loadMemberGroup fetches the group from the path id and requires the caller
// to be a member.
func loadMemberGroup(db *gorm.DB, c *fiber.Ctx) (*models.Group, uuid.UUID, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	groupID, err := uuid.Parse(c.Params("id", c.Query("id")))
	if err != nil {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid group id")
	}

	var group models.Group
	if err := db.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Group doesn't exist")
		}
		return nil, uuid.Nil, err
	}

	if group.DeletedAt != nil {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Group doesn't exist")
	}

	if !containsMember(group.Members, userID.String()) {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusForbidden, "You are not a member of this group")
	}

	return &group, userID, nil
}
