package handler

import (
	"fmt"
	"net/http"
	"testing"

	"storefront/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategories(t *testing.T) {
	router, db := setupRouter(t)

	shirts := models.Category{Name: "Shirts"}
	require.NoError(t, db.Create(&shirts).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Hats"}).Error)
	seedProduct(t, db, "Plain T-Shirt", "14.99", &shirts.ID)

	w := doRequest(router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	categories := decode[[]map[string]any](t, w)
	require.Len(t, categories, 2)
	for _, c := range categories {
		assert.IsType(t, []any{}, c["products"], "products must always be an array")
	}

	products := categories[0]["products"].([]any)
	require.Len(t, products, 1)
	product := products[0].(map[string]any)
	assert.Equal(t, "Plain T-Shirt", product["name"])
	assert.Equal(t, "14.99", product["price"])
	assert.EqualValues(t, shirts.ID, product["category_id"])
	assert.Empty(t, categories[1]["products"])
}

func TestGetCategories_PriceKeepsTwoDecimals(t *testing.T) {
	router, db := setupRouter(t)

	shoes := models.Category{Name: "Shoes"}
	require.NoError(t, db.Create(&shoes).Error)
	seedProduct(t, db, "Running Sneakers", "90.00", &shoes.ID)

	w := doRequest(router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	categories := decode[[]CategoryResponse](t, w)
	require.Len(t, categories, 1)
	require.Len(t, categories[0].Products, 1)
	assert.Equal(t, "90.00", categories[0].Products[0].Price)
}

func TestGetCategories_Empty(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetCategoryByID(t *testing.T) {
	router, db := setupRouter(t)

	music := models.Category{Name: "Music"}
	require.NoError(t, db.Create(&music).Error)
	seedProduct(t, db, "Top 40 Music Compilation Vinyl Record", "12.99", &music.ID)

	w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/categories/%d", music.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[CategoryResponse](t, w)
	assert.Equal(t, "Music", got.Name)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Top 40 Music Compilation Vinyl Record", got.Products[0].Name)
}

func TestGetCategoryByID_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/categories/12", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decode[ErrorResponse](t, w).Error)

	w = doRequest(router, http.MethodGet, "/api/categories/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCategory(t *testing.T) {
	router, db := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/api/categories", map[string]any{"name": "Shoes"})
	require.Equal(t, http.StatusOK, w.Code)

	created := decode[CategoryResponse](t, w)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Shoes", created.Name)
	assert.NotNil(t, created.Products)
	assert.Empty(t, created.Products)

	var stored models.Category
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, "Shoes", stored.Name)
}

func TestCreateCategory_IgnoresUnknownFields(t *testing.T) {
	router, db := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/api/categories", map[string]any{"id": 777, "name": "Shorts"})
	require.Equal(t, http.StatusOK, w.Code)

	created := decode[CategoryResponse](t, w)
	assert.NotEqual(t, uint(777), created.ID)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", 777).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateCategory_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing name", map[string]any{}, "name is required"},
		{"wrong type", map[string]any{"name": true}, "name must be a string"},
		{"blank", map[string]any{"name": "  "}, "name must not be blank"},
		{"malformed", "{", "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, db := setupRouter(t)

			w := doRequest(router, http.MethodPost, "/api/categories", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decode[ErrorResponse](t, w).Error)

			var count int64
			require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestUpdateCategory(t *testing.T) {
	router, db := setupRouter(t)

	category := models.Category{Name: "Shrts"}
	require.NoError(t, db.Create(&category).Error)

	w := doRequest(router, http.MethodPut, fmt.Sprintf("/api/categories/%d", category.ID),
		map[string]any{"id": 999, "name": "Shirts"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, UpdateCountResponse{Updated: 1}, decode[UpdateCountResponse](t, w))

	var stored models.Category
	require.NoError(t, db.First(&stored, category.ID).Error)
	assert.Equal(t, "Shirts", stored.Name)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodPut, "/api/categories/5", map[string]any{"name": "Hats"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategory(t *testing.T) {
	router, db := setupRouter(t)

	category := models.Category{Name: "Hats"}
	require.NoError(t, db.Create(&category).Error)
	product := seedProduct(t, db, "Branded Baseball Hat", "22.99", &category.ID)
	path := fmt.Sprintf("/api/categories/%d", category.ID)

	w := doRequest(router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DeleteCountResponse{Deleted: 1}, decode[DeleteCountResponse](t, w))

	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodDelete, path, nil).Code)

	var orphan models.Product
	require.NoError(t, db.First(&orphan, product.ID).Error)
	assert.Nil(t, orphan.CategoryID)
}

func TestCategoryRoutes_PersistenceFailure(t *testing.T) {
	router := setupFailingRouter(t)

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/categories", nil},
		{http.MethodGet, "/api/categories/1", nil},
		{http.MethodPost, "/api/categories", map[string]any{"name": "Shoes"}},
		{http.MethodPut, "/api/categories/1", map[string]any{"name": "Shoes"}},
		{http.MethodDelete, "/api/categories/1", nil},
	}

	for _, r := range requests {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := doRequest(router, r.method, r.path, r.body)
			require.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
		})
	}
}
