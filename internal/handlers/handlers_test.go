package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/giftola/internal/config"
	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
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
	require.NoError(t, db.Create(&defaults).Error)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
		OTPExpires:   10 * time.Minute,
	}
}

// newTestApp builds a fiber app with the production error handler so tests
// observe the same envelopes clients do.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
}

// captureMailer implements services.OTPMailer and records plaintext codes.
type captureMailer struct {
	verifyCodes []string
	resetCodes  []string
}

func (m *captureMailer) SendVerificationOTP(email, name, otp string, expiresMinutes int) error {
	m.verifyCodes = append(m.verifyCodes, otp)
	return nil
}

func (m *captureMailer) SendForgotPasswordOTP(email, name, otp string, expiresMinutes int) error {
	m.resetCodes = append(m.resetCodes, otp)
	return nil
}

func (m *captureMailer) lastVerifyCode() string {
	if n := len(m.verifyCodes); n > 0 {
		return m.verifyCodes[n-1]
	}
	return ""
}

// envelope is the response body shape shared by every endpoint.
type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)

	return resp.StatusCode, env
}

func userToken(t *testing.T, cfg *config.Config, id uuid.UUID, name string) string {
	t.Helper()
	token, err := utils.GenerateToken(cfg.JWTSecret, id, name, "user", cfg.TokenExpires)
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T, cfg *config.Config, id uuid.UUID, name string) string {
	t.Helper()
	token, err := utils.GenerateToken(cfg.JWTSecret, id, name, "admin", cfg.TokenExpires)
	require.NoError(t, err)
	return token
}

func createVerifiedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Verified:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func protect(app *fiber.App, cfg *config.Config) fiber.Router {
	return app.Group("/", middleware.AuthMiddleware(cfg))
}
