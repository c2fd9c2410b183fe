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

// ContactsHandler manages gift-recipient profiles.
type ContactsHandler struct {
	db *gorm.DB
}

// NewContactsHandler constructs a ContactsHandler.
func NewContactsHandler(db *gorm.DB) *ContactsHandler {
	return &ContactsHandler{db: db}
}

type contactRequest struct {
	Name               string   `json:"name"`
	Relationship       string   `json:"relationship"`
	DOB                string   `json:"dob"`
	Preferences        []string `json:"preferences"`
	SelectedCategories []string `json:"selectedCategories"`
	ProfileImage       string   `json:"profileImage"`
}

// Create adds a contact owned by the authenticated user.
func (h *ContactsHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Contact name is required")
	}

	contact := models.Contact{
		Name:               req.Name,
		Relationship:       req.Relationship,
		DOB:                req.DOB,
		Preferences:        req.Preferences,
		SelectedCategories: req.SelectedCategories,
		ProfileImage:       req.ProfileImage,
		CreatedBy:          userID,
	}

	if err := h.db.Create(&contact).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_contact", "Contact created successfully", contact)
}

// List returns the user's active contacts, newest first.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var contacts []models.Contact
	if err := h.db.Where("created_by = ? AND deleted_at IS NULL", userID).
		Order("created_at desc").
		Find(&contacts).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_contacts", "Contacts retrieved successfully", contacts)
}

// Get returns one contact by id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	contact, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_contact", "Contact retrieved successfully", contact)
}

// Update modifies contact fields. Ownership and lifecycle columns are never
// writable; GORM refreshes updated_at, which invalidates the gift cache.
func (h *ContactsHandler) Update(c *fiber.Ctx) error {
	contact, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Relationship != "" {
		updates["relationship"] = req.Relationship
	}
	if req.DOB != "" {
		updates["dob"] = req.DOB
	}
	if req.ProfileImage != "" {
		updates["profile_image"] = req.ProfileImage
	}

	if err := h.db.Model(contact).Updates(updates).Error; err != nil {
		return err
	}

	if req.Preferences != nil || req.SelectedCategories != nil {
		if req.Preferences != nil {
			contact.Preferences = req.Preferences
		}
		if req.SelectedCategories != nil {
			contact.SelectedCategories = req.SelectedCategories
		}
		if err := h.db.Save(contact).Error; err != nil {
			return err
		}
	}

	return utils.Respond(c, fiber.StatusOK, "update_contact", "Contact updated successfully", fiber.Map{"id": contact.ID})
}

// Delete soft-deletes a contact.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	contact, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := h.db.Model(contact).Update("deleted_at", &now).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "delete_contact", "Contact deleted successfully", fiber.Map{"id": contact.ID})
}

// loadOwned fetches the contact from the path id and enforces ownership.
func (h *ContactsHandler) loadOwned(c *fiber.Ctx) (*models.Contact, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	contactID, err := uuid.Parse(c.Params("id", c.Query("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid contact id")
	}

	var contact models.Contact
	if err := h.db.First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Contact does not exist")
		}
		return nil, err
	}

	if contact.DeletedAt != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Contact does not exist")
	}

	if contact.CreatedBy != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You are not authorized to access this contact")
	}

	return &contact, nil
}
