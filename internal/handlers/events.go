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

// EventsHandler manages gift-giving occasions.
type EventsHandler struct {
	db *gorm.DB
}

// NewEventsHandler constructs an EventsHandler.
func NewEventsHandler(db *gorm.DB) *EventsHandler {
	return &EventsHandler{db: db}
}

type eventRequest struct {
	Title         string     `json:"title"`
	Date          *time.Time `json:"date"`
	Description   string     `json:"description"`
	Venue         string     `json:"venue"`
	CoverImage    string     `json:"coverImage"`
	PreferredCost int        `json:"preferredCost"`
	CreatedFor    string     `json:"createdFor"`
	Status        string     `json:"status"`
}

// Create adds an event linked to one of the user's contacts.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Title == "":
		return fiber.NewError(fiber.StatusBadRequest, "Event title is required")
	case req.Date == nil:
		return fiber.NewError(fiber.StatusBadRequest, "Event date is required")
	case req.Description == "":
		return fiber.NewError(fiber.StatusBadRequest, "Event description is required")
	case req.Venue == "":
		return fiber.NewError(fiber.StatusBadRequest, "Event venue is required")
	case req.PreferredCost <= 0:
		return fiber.NewError(fiber.StatusBadRequest, "Event preferred cost is required")
	case req.CreatedFor == "":
		return fiber.NewError(fiber.StatusBadRequest, "Event created for is required")
	}

	contactID, err := uuid.Parse(req.CreatedFor)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contact id")
	}

	event := models.Event{
		Title:         req.Title,
		Date:          *req.Date,
		Description:   req.Description,
		Venue:         req.Venue,
		CoverImage:    req.CoverImage,
		PreferredCost: req.PreferredCost,
		CreatedFor:    contactID,
		Status:        req.Status,
		CreatedBy:     userID,
	}

	if err := h.db.Create(&event).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_event", "Event created successfully", event)
}

// List returns the user's active events, newest first.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var events []models.Event
	if err := h.db.Where("created_by = ? AND deleted_at IS NULL", userID).
		Order("created_at desc").
		Find(&events).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_events", "Events retrieved successfully", events)
}

// Get returns one event by id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	event, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_event", "Event retrieved successfully", event)
}

// Update modifies event fields. The linked contact and lifecycle columns are
// not writable.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	event, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Venue != "" {
		updates["venue"] = req.Venue
	}
	if req.CoverImage != "" {
		updates["cover_image"] = req.CoverImage
	}
	if req.PreferredCost > 0 {
		updates["preferred_cost"] = req.PreferredCost
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := h.db.Model(event).Updates(updates).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "update_event", "Event updated successfully", fiber.Map{"id": event.ID})
}

// Delete soft-deletes an event.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	event, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := h.db.Model(event).Update("deleted_at", &now).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "delete_event", "Event deleted successfully", fiber.Map{"id": event.ID})
}

// loadOwned fetches the event from the path id and enforces ownership.
func (h *EventsHandler) loadOwned(c *fiber.Ctx) (*models.Event, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	eventID, err := uuid.Parse(c.Params("id", c.Query("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	var event models.Event
	if err := h.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Event does not exist")
		}
		return nil, err
	}

	if event.DeletedAt != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No event found")
	}

	if event.CreatedBy != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You are not authorized to view this event")
	}

	return &event, nil
}
