package models

import (
	"time"

	"github.com/google/uuid"
)

// Group is a set of users who share gift ideas. The creator is always a
// member; membership changes only through the invite flow.
type Group struct {
	BaseModel
	Name      string     `json:"name"`
	Image     string     `json:"image"`
	Members   []string   `gorm:"serializer:json" json:"members"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;index" json:"createdBy"`
	DeletedAt *time.Time `json:"deletedAt"`
}

type Category struct {
	BaseModel
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;index" json:"createdBy"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

type Question struct {
	BaseModel
	Title     string     `json:"title"`
	Options   []string   `gorm:"serializer:json" json:"options"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;index" json:"createdBy"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// SavedGift is a bookmarked product. Saving the same ASIN twice removes the
// bookmark instead of duplicating it.
type SavedGift struct {
	BaseModel
	Title     string     `json:"title"`
	ASIN      string     `gorm:"index" json:"asin"`
	Price     string     `json:"price"`
	Image     string     `json:"image"`
	Link      string     `json:"link"`
	Rating    float64    `json:"rating"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;index" json:"createdBy"`
	DeletedAt *time.Time `json:"deletedAt"`
}

type Notification struct {
	BaseModel
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	UserID    uuid.UUID  `gorm:"type:uuid;index" json:"userId"`
	ReadAt    *time.Time `json:"readAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}
