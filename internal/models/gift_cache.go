package models

import (
	"time"

	"github.com/google/uuid"
)

// GiftItem is one recommended product inside a cache row.
type GiftItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Price     string    `json:"price"`
	Link      string    `json:"link"`
	Image     string    `json:"image"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventGiftCache memoizes the recommendation results for an event. The event
// id is the primary key, so recomputation overwrites in place. A row is
// servable iff CreatedAt is not older than the contact's UpdatedAt.
type EventGiftCache struct {
	EventID   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"eventId"`
	GiftList  []GiftItem `gorm:"serializer:json" json:"giftList"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}
