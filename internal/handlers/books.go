package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/utils"
)

// BooksHandler serves the curated book catalog.
type BooksHandler struct {
	db *gorm.DB
}

// NewBooksHandler constructs a BooksHandler.
func NewBooksHandler(db *gorm.DB) *BooksHandler {
	return &BooksHandler{db: db}
}

// ListCategories returns all active book categories, newest first.
func (h *BooksHandler) ListCategories(c *fiber.Ctx) error {
	var categories []models.BookCategory
	if err := h.db.Where("deleted_at IS NULL").Order("created_at desc").Find(&categories).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_books_categories", "Books categories retrieved successfully", categories)
}

type bookCategoryRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CreateCategory adds a book category.
func (h *BooksHandler) CreateCategory(c *fiber.Ctx) error {
	var req bookCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.URL == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide all required fields")
	}

	category := models.BookCategory{Name: req.Name, URL: req.URL}
	if err := h.db.Create(&category).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_books_category", "Books category created successfully", category)
}

// List returns all active books, newest first.
func (h *BooksHandler) List(c *fiber.Ctx) error {
	var books []models.Book
	if err := h.db.Where("deleted_at IS NULL").Order("created_at desc").Find(&books).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusOK, "get_books", "Books retrieved successfully", books)
}

type bookRequest struct {
	SrNumber    int     `json:"srNumber"`
	Name        string  `json:"name"`
	RatingValue float64 `json:"ratingValue"`
	RatingCount int     `json:"ratingCount"`
	Author      string  `json:"author"`
	URL         string  `json:"url"`
	ImageURL    string  `json:"imageUrl"`
	Price       string  `json:"price"`
	Type        string  `json:"type"`
	CategoryID  string  `json:"categoryId"`
}

// Create adds a book to the catalog.
func (h *BooksHandler) Create(c *fiber.Ctx) error {
	var req bookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch {
	case req.SrNumber == 0:
		return fiber.NewError(fiber.StatusBadRequest, "Please provide srNumber")
	case req.Name == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide name")
	case req.RatingValue == 0:
		return fiber.NewError(fiber.StatusBadRequest, "Please provide ratingValue")
	case req.RatingCount == 0:
		return fiber.NewError(fiber.StatusBadRequest, "Please provide ratingCount")
	case req.Author == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide author")
	case req.URL == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide url")
	case req.ImageURL == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide imageUrl")
	case req.Price == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide price")
	case req.Type == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide type")
	case req.CategoryID == "":
		return fiber.NewError(fiber.StatusBadRequest, "Please provide categoryId")
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
	}

	book := models.Book{
		SrNumber:    req.SrNumber,
		Name:        req.Name,
		RatingValue: req.RatingValue,
		RatingCount: req.RatingCount,
		Author:      req.Author,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Type:        req.Type,
		CategoryID:  categoryID,
	}

	if err := h.db.Create(&book).Error; err != nil {
		return err
	}

	return utils.Respond(c, fiber.StatusCreated, "create_book", "Book created successfully", book)
}
