package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/utils"
)

// OTP validation failures surfaced to handlers.
var (
	ErrInvalidOTP = errors.New("invalid OTP")
	ErrExpiredOTP = errors.New("OTP expired")
)

// OTPPurpose selects the mail template sent with a code.
type OTPPurpose int

const (
	OTPVerifyAccount OTPPurpose = iota
	OTPResetPassword
)

// OTPMailer dispatches the plaintext code to the user.
type OTPMailer interface {
	SendVerificationOTP(email, name, otp string, expiresMinutes int) error
	SendForgotPasswordOTP(email, name, otp string, expiresMinutes int) error
}

// OTPService issues, validates and retires one-time passcodes. Only the
// bcrypt hash of a code is ever stored; expiry is epoch-seconds arithmetic
// against the same clock that stamps created_at.
type OTPService struct {
	db      *gorm.DB
	mailer  OTPMailer
	expires time.Duration
}

// NewOTPService creates an OTPService.
func NewOTPService(db *gorm.DB, mailer OTPMailer, expires time.Duration) *OTPService {
	return &OTPService{db: db, mailer: mailer, expires: expires}
}

// Issue generates a fresh 6-digit code for the user, replaces any prior
// codes for the email, and mails the plaintext. At most one active OTP
// exists per address after this returns.
func (s *OTPService) Issue(userID uuid.UUID, email, name string, purpose OTPPurpose) error {
	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate OTP: %w", err)
	}

	hashed, err := utils.HashPassword(code)
	if err != nil {
		return fmt.Errorf("hash OTP: %w", err)
	}

	record := models.OtpCode{
		HashedOTP: hashed,
		OtpExpiry: time.Now().Unix() + int64(s.expires.Seconds()),
		UserID:    userID,
		UserEmail: email,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_email = ?", email).Delete(&models.OtpCode{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return fmt.Errorf("store OTP: %w", err)
	}

	minutes := int(s.expires.Minutes())
	if purpose == OTPResetPassword {
		return s.mailer.SendForgotPasswordOTP(email, name, code, minutes)
	}
	return s.mailer.SendVerificationOTP(email, name, code, minutes)
}

// ValidateAndConsume checks the candidate code against the newest OTP for
// the email and deletes the record on success, all inside the given
// transaction so the consume and the caller's dependent write commit
// together. Returns the owning user id.
func (s *OTPService) ValidateAndConsume(tx *gorm.DB, email, candidate string) (uuid.UUID, error) {
	var record models.OtpCode
	err := tx.Where("user_email = ?", email).
		Order("created_at desc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrInvalidOTP
		}
		return uuid.Nil, err
	}

	if time.Now().Unix() > record.OtpExpiry {
		return uuid.Nil, ErrExpiredOTP
	}

	if !utils.CheckPassword(record.HashedOTP, candidate) {
		return uuid.Nil, ErrInvalidOTP
	}

	if err := tx.Delete(&models.OtpCode{}, "id = ?", record.ID).Error; err != nil {
		return uuid.Nil, err
	}

	return record.UserID, nil
}

// generateOTP returns 6 cryptographically random digits.
func generateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
