package models

import "time"

// User represents a mobile app account.
type User struct {
	BaseModel
	Name         string     `json:"name"`
	Email        string     `gorm:"index" json:"email"`
	PasswordHash string     `json:"-"`
	Verified     bool       `json:"verified"`
	ProfileImage *string    `json:"profileImage"`
	Blocked      bool       `json:"blocked"`
	DeletedAt    *time.Time `json:"deletedAt"`
}

// Admin represents a dashboard account. Admins are verified at creation and
// never go through the OTP flow.
type Admin struct {
	BaseModel
	Name         string     `json:"name"`
	Email        string     `gorm:"index" json:"email"`
	PasswordHash string     `json:"-"`
	Verified     bool       `json:"verified"`
	ProfileImage *string    `json:"profileImage"`
	Blocked      bool       `json:"blocked"`
	DeletedAt    *time.Time `json:"deletedAt"`
}
