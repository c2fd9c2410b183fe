package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a gift recipient profile owned by a user. Its UpdatedAt drives
// the gift cache staleness check, so every edit must touch it.
type Contact struct {
	BaseModel
	Name               string     `json:"name"`
	Relationship       string     `json:"relationship"`
	DOB                string     `json:"dob"`
	Preferences        []string   `gorm:"serializer:json" json:"preferences"`
	SelectedCategories []string   `gorm:"serializer:json" json:"selectedCategories"`
	ProfileImage       string     `json:"profileImage"`
	CreatedBy          uuid.UUID  `gorm:"type:uuid;index" json:"createdBy"`
	DeletedAt          *time.Time `json:"deletedAt"`
}

// Event is a gift-giving occasion linked to a contact.
type Event struct {
	BaseModel
	Title         string     `json:"title"`
	Date          time.Time  `json:"date"`
	Description   string     `json:"description"`
	Venue         string     `json:"venue"`
	CoverImage    string     `json:"coverImage"`
	PreferredCost int        `json:"preferredCost"`
	CreatedFor    uuid.UUID  `gorm:"type:uuid;index" json:"createdFor"`
	Status        string     `json:"status"`
	CreatedBy     uuid.UUID  `gorm:"type:uuid;index" json:"createdBy"`
	DeletedAt     *time.Time `json:"deletedAt"`
}
