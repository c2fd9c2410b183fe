package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/giftola/internal/models"
)

// newTestDB opens an isolated in-memory database with the full schema and a
// default settings row.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive across the pool.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.OtpCode{},
		&models.Contact{},
		&models.Event{},
		&models.Group{},
		&models.GroupList{},
		&models.GroupProduct{},
		&models.Category{},
		&models.Question{},
		&models.SavedGift{},
		&models.SavedGiftIdea{},
		&models.BookCategory{},
		&models.Book{},
		&models.Notification{},
		&models.Settings{},
		&models.EventGiftCache{},
	))

	defaults := models.DefaultSettings()
	defaults.AffiliateTag = "?tag=giftola-20"
	require.NoError(t, db.Create(&defaults).Error)

	return db
}

// captureMailer records OTP mails instead of sending them.
type captureMailer struct {
	verifyCodes []string
	resetCodes  []string
	recipients  []string
}

func (m *captureMailer) SendVerificationOTP(email, name, otp string, expiresMinutes int) error {
	m.verifyCodes = append(m.verifyCodes, otp)
	m.recipients = append(m.recipients, email)
	return nil
}

func (m *captureMailer) SendForgotPasswordOTP(email, name, otp string, expiresMinutes int) error {
	m.resetCodes = append(m.resetCodes, otp)
	m.recipients = append(m.recipients, email)
	return nil
}

func (m *captureMailer) lastCode() string {
	if n := len(m.verifyCodes); n > 0 {
		return m.verifyCodes[n-1]
	}
	return ""
}
