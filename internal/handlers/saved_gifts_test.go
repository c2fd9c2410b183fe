package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/config"
	"github.com/example/giftola/internal/models"
)

func newSavedGiftsApp(t *testing.T, db *gorm.DB) (*fiber.App, *config.Config) {
	t.Helper()

	cfg := testConfig()
	handler := NewSavedGiftsHandler(db)

	app := newTestApp()
	api := protect(app, cfg)
	api.Post("/saved-products", handler.Save)
	api.Get("/saved-products", handler.List)

	return app, cfg
}

func giftBody(asin string) fiber.Map {
	return fiber.Map{
		"title": "Mug " + asin,
		"asin":  asin,
		"price": "$12.00",
		"image": "https://images.example.com/" + asin + ".jpg",
		"link":  "https://amazon.com/dp/" + asin,
	}
}

func TestSaveGiftToggles(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newSavedGiftsApp(t, db)
	user := createVerifiedUser(t, db, "amy@example.com")
	token := userToken(t, cfg, user.ID, user.Name)

	status, env := doRequest(t, app, http.MethodPost, "/saved-products", token, giftBody("A1"))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "save_gift", env.Code)

	// Saving the same ASIN again removes the bookmark.
	status, env = doRequest(t, app, http.MethodPost, "/saved-products", token, giftBody("A1"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "unsave_gift", env.Code)

	var count int64
	require.NoError(t, db.Model(&models.SavedGift{}).
		Where("created_by = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSaveGiftToggleIsPerUser(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newSavedGiftsApp(t, db)
	amy := createVerifiedUser(t, db, "amy@example.com")
	bob := createVerifiedUser(t, db, "bob@example.com")

	status, _ := doRequest(t, app, http.MethodPost, "/saved-products",
		userToken(t, cfg, amy.ID, amy.Name), giftBody("A1"))
	require.Equal(t, http.StatusCreated, status)

	// The same ASIN from another user is a fresh save, not a toggle-off.
	status, env := doRequest(t, app, http.MethodPost, "/saved-products",
		userToken(t, cfg, bob.ID, bob.Name), giftBody("A1"))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "save_gift", env.Code)
}

func TestSavedGiftsListPagination(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newSavedGiftsApp(t, db)
	user := createVerifiedUser(t, db, "amy@example.com")
	token := userToken(t, cfg, user.ID, user.Name)

	for i := 0; i < 5; i++ {
		status, _ := doRequest(t, app, http.MethodPost, "/saved-products", token,
			giftBody(fmt.Sprintf("A%d", i)))
		require.Equal(t, http.StatusCreated, status)
	}

	status, env := doRequest(t, app, http.MethodGet, "/saved-products?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, status)

	var page []models.SavedGift
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 2)

	status, env = doRequest(t, app, http.MethodGet, "/saved-products?page=3&limit=2", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page, 1)
}

func TestSaveGiftValidation(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newSavedGiftsApp(t, db)
	user := createVerifiedUser(t, db, "amy@example.com")
	token := userToken(t, cfg, user.ID, user.Name)

	status, env := doRequest(t, app, http.MethodPost, "/saved-products", token, fiber.Map{
		"title": "Mug",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please provide an ASIN", env.Message)
}
