package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"storefront/backend/internal/models"
	"storefront/backend/internal/repository"
	"storefront/backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// setupRouter mounts both resources over a fresh in-memory database.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	log := zaptest.NewLogger(t)

	router := gin.New()
	api := router.Group("/api")
	NewCategoryHandler(repository.NewCategoryRepository(db), log).Register(api)
	NewTagHandler(repository.NewTagRepository(db), log).Register(api)
	return router, db
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, categoryID *uint, tags ...*models.Tag) models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      3,
		CategoryID: categoryID,
		Tags:       tags,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

var errDatabaseDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")

// failingCategories and failingTags simulate a broken database.
type failingCategories struct{}

func (failingCategories) List(context.Context) ([]models.Category, error) { return nil, errDatabaseDown }
func (failingCategories) Get(context.Context, uint) (*models.Category, error) {
	return nil, errDatabaseDown
}
func (failingCategories) Create(context.Context, *models.Category) error { return errDatabaseDown }
func (failingCategories) Update(context.Context, uint, string) (int64, error) {
	return 0, errDatabaseDown
}
func (failingCategories) Delete(context.Context, uint) (int64, error) { return 0, errDatabaseDown }

type failingTags struct{}

func (failingTags) List(context.Context) ([]models.Tag, error) { return nil, errDatabaseDown }
func (failingTags) Get(context.Context, uint) (*models.Tag, error) { return nil, errDatabaseDown }
func (failingTags) Create(context.Context, *models.Tag) error { return errDatabaseDown }
func (failingTags) Update(context.Context, uint, string) error { return errDatabaseDown }
func (failingTags) Delete(context.Context, uint) error { return errDatabaseDown }

func setupFailingRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	router := gin.New()
	api := router.Group("/api")
	NewCategoryHandler(failingCategories{}, log).Register(api)
	NewTagHandler(failingTags{}, log).Register(api)
	return router
}
