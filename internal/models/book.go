package models

import (
	"time"

	"github.com/google/uuid"
)

// BookCategory groups the curated book catalog.
type BookCategory struct {
	BaseModel
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// Book is one entry of the curated book catalog surfaced in the app.
type Book struct {
	BaseModel
	SrNumber    int        `json:"srNumber"`
	Name        string     `json:"name"`
	RatingValue float64    `json:"ratingValue"`
	RatingCount int        `json:"ratingCount"`
	Author      string     `json:"author"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"imageUrl"`
	Price       string     `json:"price"`
	Type        string     `json:"type"`
	CategoryID  uuid.UUID  `gorm:"type:uuid;index" json:"categoryId"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// SavedGiftIdea is a bookmarked idea from the recommendation results. Unlike
// SavedGift there is no toggle; ideas are created and deleted explicitly.
type SavedGiftIdea struct {
	BaseModel
	Title     string     `json:"title"`
	Price     string     `json:"price"`
	Image     string     `json:"image"`
	Link      string     `json:"link"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;index" json:"createdBy"`
	DeletedAt *time.Time `json:"deletedAt"`
}
