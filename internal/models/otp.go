package models

import "github.com/google/uuid"

// OtpCode stores a hashed one-time passcode tied to a user email.
// Rows are hard-deleted on successful consumption; expiry is checked at
// validation time against OtpExpiry (epoch seconds), never by a sweep.
type OtpCode struct {
	BaseModel
	HashedOTP string    `json:"-"`
	OtpExpiry int64     `json:"otpExpiry"`
	UserID    uuid.UUID `gorm:"type:uuid" json:"userId"`
	UserEmail string    `gorm:"index" json:"userEmail"`
}
