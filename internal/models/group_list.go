package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupList is a shared wishlist inside a group. Any member may read it or
// add to it; only its creator may edit or delete it.
type GroupList struct {
	BaseModel
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	GroupID     uuid.UUID  `gorm:"type:uuid;index" json:"groupId"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;index" json:"createdBy"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// GroupProduct is one gift inside a group list. A member may reserve it by
// setting ReservedBy; a reserved product cannot be reserved again until the
// reservation is cleared.
type GroupProduct struct {
	BaseModel
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Price       float64    `json:"price"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Quantity    int        `json:"quantity"`
	ReservedBy  *uuid.UUID `gorm:"type:uuid" json:"reservedBy"`
	ListID      uuid.UUID  `gorm:"type:uuid;index" json:"listId"`
	GroupID     uuid.UUID  `gorm:"type:uuid;index" json:"groupId"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;index" json:"createdBy"`
	DeletedAt   *time.Time `json:"deletedAt"`
}
