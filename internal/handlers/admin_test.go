package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/config"
	"github.com/example/giftola/internal/middleware"
	"github.com/example/giftola/internal/models"
	"github.com/example/giftola/internal/services"
)

func newAdminApp(t *testing.T, db *gorm.DB) (*fiber.App, *config.Config) {
	t.Helper()

	cfg := testConfig()
	handler := NewAdminHandler(db, cfg, services.NewSettingsService(db))

	app := newTestApp()
	app.Post("/admin/auth/register", handler.Register)
	app.Post("/admin/auth/login", handler.Login)

	settings := app.Group("/admin/settings", middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
	settings.Get("/", handler.GetSettings)
	settings.Patch("/", handler.UpdateSettings)
	settings.Post("/reset", handler.ResetSettings)

	return app, cfg
}

func TestAdminRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	app, _ := newAdminApp(t, db)

	status, env := doRequest(t, app, http.MethodPost, "/admin/auth/register", "", fiber.Map{
		"name":     "Root",
		"email":    "root@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "register_admin", env.Code)

	var payload struct {
		Token string       `json:"token"`
		Admin models.Admin `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.NotEmpty(t, payload.Token)
	// Admin accounts skip the OTP lifecycle.
	assert.True(t, payload.Admin.Verified)

	status, env = doRequest(t, app, http.MethodPost, "/admin/auth/login", "", fiber.Map{
		"email":    "root@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "login_admin", env.Code)
}

func TestSettingsRequireAdminRole(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newAdminApp(t, db)
	user := createVerifiedUser(t, db, "amy@example.com")

	token := userToken(t, cfg, user.ID, user.Name)
	status, env := doRequest(t, app, http.MethodGet, "/admin/settings/", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "admin access required", env.Message)

	status, _ = doRequest(t, app, http.MethodGet, "/admin/settings/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSettingsUpdateAndReset(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newAdminApp(t, db)

	admin := models.Admin{Name: "Root", Email: "root@example.com", Verified: true}
	require.NoError(t, db.Create(&admin).Error)
	token := adminToken(t, cfg, admin.ID, admin.Name)

	status, env := doRequest(t, app, http.MethodPatch, "/admin/settings/", token, fiber.Map{
		"NO_OF_GIFTS":   7,
		"AFFILIATE_TAG": "?tag=custom-21",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "update_settings", env.Code)

	status, env = doRequest(t, app, http.MethodGet, "/admin/settings/", token, nil)
	require.Equal(t, http.StatusOK, status)

	var got models.Settings
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 7, got.GiftCount)
	assert.Equal(t, "?tag=custom-21", got.AffiliateTag)

	status, _ = doRequest(t, app, http.MethodPatch, "/admin/settings/", token, fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodPost, "/admin/settings/reset", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = doRequest(t, app, http.MethodGet, "/admin/settings/", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	defaults := models.DefaultSettings()
	assert.Equal(t, defaults.GiftCount, got.GiftCount)
	assert.Equal(t, defaults.AffiliateTag, got.AffiliateTag)
}
