package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/config"
	"github.com/example/giftola/internal/models"
)

func newContactsApp(t *testing.T, db *gorm.DB) (*fiber.App, *config.Config) {
	t.Helper()

	cfg := testConfig()
	handler := NewContactsHandler(db)

	app := newTestApp()
	api := protect(app, cfg)
	api.Post("/contacts", handler.Create)
	api.Get("/contacts", handler.List)
	api.Get("/contacts/:id", handler.Get)
	api.Patch("/contacts/:id", handler.Update)
	api.Delete("/contacts/:id", handler.Delete)

	return app, cfg
}

func TestContactCRUD(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newContactsApp(t, db)
	user := createVerifiedUser(t, db, "amy@example.com")
	token := userToken(t, cfg, user.ID, user.Name)

	status, env := doRequest(t, app, http.MethodPost, "/contacts", token, fiber.Map{
		"name":         "Dana",
		"relationship": "Sister",
		"dob":          "1992-01-30",
		"preferences":  []string{"music"},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "create_contact", env.Code)

	var created models.Contact
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, user.ID, created.CreatedBy)

	status, env = doRequest(t, app, http.MethodGet, "/contacts/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "get_contact", env.Code)

	status, _ = doRequest(t, app, http.MethodPatch, "/contacts/"+created.ID.String(), token, fiber.Map{
		"name": "Dana Updated",
	})
	require.Equal(t, http.StatusOK, status)

	var stored models.Contact
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, "Dana Updated", stored.Name)
	// The edit must advance updated_at, which drives recommendation staleness.
	assert.True(t, stored.UpdatedAt.After(created.UpdatedAt) || stored.UpdatedAt.Equal(created.UpdatedAt))

	status, env = doRequest(t, app, http.MethodGet, "/contacts", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []models.Contact
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestContactOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newContactsApp(t, db)
	owner := createVerifiedUser(t, db, "owner@example.com")
	other := createVerifiedUser(t, db, "other@example.com")

	contact := models.Contact{Name: "Dana", CreatedBy: owner.ID}
	require.NoError(t, db.Create(&contact).Error)

	otherToken := userToken(t, cfg, other.ID, other.Name)

	status, _ := doRequest(t, app, http.MethodGet, "/contacts/"+contact.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodPatch, "/contacts/"+contact.ID.String(), otherToken, fiber.Map{"name": "x"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodDelete, "/contacts/"+contact.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Another user's contacts never show in the list.
	status, env := doRequest(t, app, http.MethodGet, "/contacts", otherToken, nil)
	require.Equal(t, http.StatusOK, status)
	var list []models.Contact
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestContactSoftDelete(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newContactsApp(t, db)
	user := createVerifiedUser(t, db, "amy@example.com")
	token := userToken(t, cfg, user.ID, user.Name)

	contact := models.Contact{Name: "Dana", CreatedBy: user.ID}
	require.NoError(t, db.Create(&contact).Error)

	status, _ := doRequest(t, app, http.MethodDelete, "/contacts/"+contact.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, status)

	// The row survives with a tombstone instead of disappearing.
	var stored models.Contact
	require.NoError(t, db.First(&stored, "id = ?", contact.ID).Error)
	require.NotNil(t, stored.DeletedAt)

	status, env := doRequest(t, app, http.MethodGet, "/contacts/"+contact.ID.String(), token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Contact does not exist", env.Message)

	status, env = doRequest(t, app, http.MethodGet, "/contacts", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []models.Contact
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestContactRequiresAuth(t *testing.T) {
	db := newTestDB(t)
	app, _ := newContactsApp(t, db)

	status, env := doRequest(t, app, http.MethodGet, "/contacts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "error", env.Code)
}

func TestContactUnknownID(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newContactsApp(t, db)
	user := createVerifiedUser(t, db, "amy@example.com")
	token := userToken(t, cfg, user.ID, user.Name)

	status, env := doRequest(t, app, http.MethodGet, "/contacts/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Contact does not exist", env.Message)
}
