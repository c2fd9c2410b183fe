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
)

func newSavedGiftIdeasApp(t *testing.T, db *gorm.DB) (*fiber.App, *config.Config) {
	t.Helper()

	cfg := testConfig()
	handler := NewSavedGiftIdeasHandler(db)

	app := newTestApp()
	api := protect(app, cfg)
	api.Post("/saved-gift-ideas", handler.Save)
	api.Get("/saved-gift-ideas", handler.List)
	api.Patch("/saved-gift-ideas/:id", handler.Update)
	api.Delete("/saved-gift-ideas/:id", handler.Delete)

	return app, cfg
}

func TestSavedGiftIdeaLifecycle(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newSavedGiftIdeasApp(t, db)
	user := createVerifiedUser(t, db, "amy@example.com")
	token := userToken(t, cfg, user.ID, user.Name)

	status, env := doRequest(t, app, http.MethodPost, "/saved-gift-ideas", token, fiber.Map{
		"title": "Espresso machine",
		"price": "$129.00",
		"image": "https://cdn.example.com/espresso.png",
		"link":  "https://example.com/espresso",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "save_gift_idea", env.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env = doRequest(t, app, http.MethodPatch, "/saved-gift-ideas/"+created.ID, token, fiber.Map{
		"price": "$99.00",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "update_saved_gift_idea", env.Code)

	status, env = doRequest(t, app, http.MethodGet, "/saved-gift-ideas", token, nil)
	require.Equal(t, http.StatusOK, status)

	var ideas []struct {
		Title string `json:"title"`
		Price string `json:"price"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ideas))
	require.Len(t, ideas, 1)
	assert.Equal(t, "$99.00", ideas[0].Price)

	status, _ = doRequest(t, app, http.MethodDelete, "/saved-gift-ideas/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = doRequest(t, app, http.MethodGet, "/saved-gift-ideas", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &ideas))
	assert.Empty(t, ideas)
}

func TestSavedGiftIdeaValidation(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newSavedGiftIdeasApp(t, db)
	user := createVerifiedUser(t, db, "amy@example.com")
	token := userToken(t, cfg, user.ID, user.Name)

	status, env := doRequest(t, app, http.MethodPost, "/saved-gift-ideas", token, fiber.Map{
		"price": "$10.00",
		"image": "img",
		"link":  "https://example.com",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please provide a title", env.Message)
}

func TestSavedGiftIdeaOwnership(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newSavedGiftIdeasApp(t, db)
	owner := createVerifiedUser(t, db, "owner@example.com")
	other := createVerifiedUser(t, db, "other@example.com")
	ownerToken := userToken(t, cfg, owner.ID, owner.Name)

	status, env := doRequest(t, app, http.MethodPost, "/saved-gift-ideas", ownerToken, fiber.Map{
		"title": "Espresso machine",
		"price": "$129.00",
		"image": "img",
		"link":  "https://example.com/espresso",
	})
	require.Equal(t, http.StatusCreated, status)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	otherToken := userToken(t, cfg, other.ID, other.Name)
	status, env = doRequest(t, app, http.MethodDelete, "/saved-gift-ideas/"+created.ID, otherToken, nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Gift idea does not belong to user", env.Message)

	// The other user's list stays empty.
	status, env = doRequest(t, app, http.MethodGet, "/saved-gift-ideas", otherToken, nil)
	require.Equal(t, http.StatusOK, status)
	var ideas []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &ideas))
	assert.Empty(t, ideas)
}
