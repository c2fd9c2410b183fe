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

// QuestionsHandler manages onboarding quiz questions.
type QuestionsHandler struct {
	db *gorm.DB
}

// NewQuestionsHandler constructs a QuestionsHandler.
func NewQuestionsHandler(db *gorm.DB) *QuestionsHandler {
	return &QuestionsHandler{db: db}
}

type questionRequest struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

// Create adds a question owned by the authenticated user.
func (h *QuestionsHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req questionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.Title == "":
		return fiber.NewError(fiber.StatusBadRequest, "Question title is required")
	case len(req.Options) == 0:
		return fiber.NewError(fiber.StatusBadRequest, "Question options are required")
	}

	question := models.Question{
		Title:     req.Title,
		Options:   req.Options,
		CreatedBy: userID,
	}

	if err := h.db.Create(&question).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_question", "Question created successfully", question)
}

// List returns the user's active questions, newest first.
func (h *QuestionsHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var questions []models.Question
	if err := h.db.Where("created_by = ? AND deleted_at IS NULL", userID).
		Order("created_at desc").
		Find(&questions).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_questions", "Questions retrieved successfully", questions)
}

// Get returns one question by id.
func (h *QuestionsHandler) Get(c *fiber.Ctx) error {
	question, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_question", "Question retrieved successfully", question)
}

// Update modifies a question.
func (h *QuestionsHandler) Update(c *fiber.Ctx) error {
	question, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	var req questionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title != "" {
		question.Title = req.Title
	}
	if req.Options != nil {
		question.Options = req.Options
	}
	question.UpdatedAt = time.Now()

	if err := h.db.Save(question).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "update_question", "Question updated successfully", fiber.Map{"id": question.ID})
}

// Delete soft-deletes a question.
func (h *QuestionsHandler) Delete(c *fiber.Ctx) error {
	question, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := h.db.Model(question).Update("deleted_at", &now).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "delete_question", "Question deleted successfully", fiber.Map{"id": question.ID})
}

func (h *QuestionsHandler) loadOwned(c *fiber.Ctx) (*models.Question, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	questionID, err := uuid.Parse(c.Params("id", c.Query("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid question id")
	}

	var question models.Question
	if err := h.db.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Question does not exist")
		}
		return nil, err
	}

	if question.DeletedAt != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Question does not exist")
	}

	if question.CreatedBy != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You are not authorized to access this question")
	}

	return &question, nil
}
