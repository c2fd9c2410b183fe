package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/giftola/internal/models"
)

func seedGroupList(t *testing.T, db *gorm.DB, group models.Group, creator *models.User) models.GroupList {
	t.Helper()

	list := models.GroupList{
		Name: "Birthday", Description: "Party ideas", Image: "img",
		GroupID: group.ID, CreatedBy: creator.ID,
	}
	require.NoError(t, db.Create(&list).Error)
	return list
}

func TestGroupProductCreateAndList(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newGroupListsApp(t, db)
	owner := createVerifiedUser(t, db, "owner@example.com")
	group := createGroupWithMembers(t, db, owner)
	list := seedGroupList(t, db, group, owner)
	token := userToken(t, cfg, owner.ID, owner.Name)

	base := "/groups/" + group.ID.String() + "/lists/" + list.ID.String() + "/products"
	status, env := doRequest(t, app, http.MethodPost, base, token, fiber.Map{
		"name":        "Lego Castle",
		"url":         "https://example.com/lego",
		"price":       49.99,
		"description": "Big castle set",
		"image":       "https://cdn.example.com/lego.png",
		"quantity":    1,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "create_group_product", env.Code)

	var created models.GroupProduct
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, list.ID, created.ListID)
	assert.Equal(t, group.ID, created.GroupID)
	// New products start unreserved even if the client says otherwise.
	assert.Nil(t, created.ReservedBy)

	status, env = doRequest(t, app, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "get_group_products", env.Code)

	var products []models.GroupProduct
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Lego Castle", products[0].Name)
}

func TestGroupProductValidation(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newGroupListsApp(t, db)
	owner := createVerifiedUser(t, db, "owner@example.com")
	group := createGroupWithMembers(t, db, owner)
	list := seedGroupList(t, db, group, owner)
	token := userToken(t, cfg, owner.ID, owner.Name)

	base := "/groups/" + group.ID.String() + "/lists/" + list.ID.String() + "/products"
	status, env := doRequest(t, app, http.MethodPost, base, token, fiber.Map{
		"name": "Lego Castle",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Url is required", env.Message)
}

func TestGroupProductReservation(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newGroupListsApp(t, db)
	owner := createVerifiedUser(t, db, "owner@example.com")
	first := createVerifiedUser(t, db, "first@example.com")
	second := createVerifiedUser(t, db, "second@example.com")
	group := createGroupWithMembers(t, db, owner, first, second)
	list := seedGroupList(t, db, group, owner)

	product := models.GroupProduct{
		Name: "Lego", URL: "https://example.com/lego", Price: 49.99,
		Description: "Castle", Image: "img", Quantity: 1,
		ListID: list.ID, GroupID: group.ID, CreatedBy: owner.ID,
	}
	require.NoError(t, db.Create(&product).Error)

	path := "/groups/" + group.ID.String() + "/lists/" + list.ID.String() + "/products/" + product.ID.String()

	status, _ := doRequest(t, app, http.MethodPatch, path,
		userToken(t, cfg, first.ID, first.Name), fiber.Map{"reservedBy": first.ID.String()})
	require.Equal(t, http.StatusOK, status)

	var stored models.GroupProduct
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	require.NotNil(t, stored.ReservedBy)
	assert.Equal(t, first.ID, *stored.ReservedBy)

	// A second member cannot steal the reservation.
	status, env := doRequest(t, app, http.MethodPatch, path,
		userToken(t, cfg, second.ID, second.Name), fiber.Map{"reservedBy": second.ID.String()})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Product is already reserved", env.Message)

	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	require.NotNil(t, stored.ReservedBy)
	assert.Equal(t, first.ID, *stored.ReservedBy)

	// An explicit empty reservedBy releases the gift again.
	status, _ = doRequest(t, app, http.MethodPatch, path,
		userToken(t, cfg, first.ID, first.Name), fiber.Map{"reservedBy": ""})
	require.Equal(t, http.StatusOK, status)

	stored = models.GroupProduct{}
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Nil(t, stored.ReservedBy)

	status, _ = doRequest(t, app, http.MethodPatch, path,
		userToken(t, cfg, second.ID, second.Name), fiber.Map{"reservedBy": second.ID.String()})
	require.Equal(t, http.StatusOK, status)
}

func TestGroupProductRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newGroupListsApp(t, db)
	owner := createVerifiedUser(t, db, "owner@example.com")
	outsider := createVerifiedUser(t, db, "outsider@example.com")
	group := createGroupWithMembers(t, db, owner)
	list := seedGroupList(t, db, group, owner)

	base := "/groups/" + group.ID.String() + "/lists/" + list.ID.String() + "/products"
	status, env := doRequest(t, app, http.MethodGet, base,
		userToken(t, cfg, outsider.ID, outsider.Name), nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You are not a member of this group", env.Message)
}

func TestGroupProductDeleteHidesFromList(t *testing.T) {
	db := newTestDB(t)
	app, cfg := newGroupListsApp(t, db)
	owner := createVerifiedUser(t, db, "owner@example.com")
	group := createGroupWithMembers(t, db, owner)
	list := seedGroupList(t, db, group, owner)
	token := userToken(t, cfg, owner.ID, owner.Name)

	product := models.GroupProduct{
		Name: "Lego", URL: "https://example.com/lego", Price: 49.99,
		Description: "Castle", Image: "img", Quantity: 1,
		ListID: list.ID, GroupID: group.ID, CreatedBy: owner.ID,
	}
	require.NoError(t, db.Create(&product).Error)

	path := "/groups/" + group.ID.String() + "/lists/" + list.ID.String() + "/products/" + product.ID.String()
	status, _ := doRequest(t, app, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, env := doRequest(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Group Product doesn't exist", env.Message)
}
