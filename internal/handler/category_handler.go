package handler

import (
	"errors"
	"net/http"
	"strings"

	"storefront/backend/internal/models"
	"storefront/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

// CategoryInput is the whitelist of writable category fields.
type CategoryInput struct {
	Name string `json:"name" binding:"required" example:"Shirts"`
}

type ProductResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Price      string `json:"price" example:"14.99"`
	Stock      int    `json:"stock"`
	CategoryID *uint  `json:"category_id"`
}

type CategoryResponse struct {
	ID       uint              `json:"id"`
	Name     string            `json:"name"`
	Products []ProductResponse `json:"products"`
}

// UpdateCountResponse reports how many rows an update touched.
type UpdateCountResponse struct {
	Updated int64 `json:"updated" example:"1"`
}

// DeleteCountResponse reports how many rows a delete removed.
type DeleteCountResponse struct {
	Deleted int64 `json:"deleted" example:"1"`
}

func newCategoryResponse(category models.Category) CategoryResponse {
	products := make([]ProductResponse, 0, len(category.Products))
	for _, p := range category.Products {
		products = append(products, ProductResponse{
			ID:         p.ID,
			Name:       p.Name,
			Price:      formatPrice(p.Price),
			Stock:      p.Stock,
			CategoryID: p.CategoryID,
		})
	}

	return CategoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		Products: products,
	}
}

// endregion

// CategoryHandler serves the /categories resource.
type CategoryHandler struct {
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewCategoryHandler(categories repository.CategoryRepository, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: log.Named("categories")}
}

// Register mounts the category routes on rg.
func (h *CategoryHandler) Register(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.GetCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func bindCategoryInput(c *gin.Context) (CategoryInput, bool) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return input, false
	}
	if strings.TrimSpace(input.Name) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name must not be blank"})
		return input, false
	}
	return input, true
}

// GetCategories godoc
// @Summary      Get all categories
// @Description  Retrieves every category with its products.
// @Tags         categories
// @Produce      json
// @Success      200  {array}   CategoryResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "Failed to list categories", err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, newCategoryResponse(category))
	}
	c.JSON(http.StatusOK, response)
}

// GetCategoryByID godoc
// @Summary      Get a single category by ID
// @Description  Retrieves one category with its products.
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Category not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		return
	}
	if err != nil {
		internalError(c, h.log, "Failed to fetch category", err)
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(*category))
}

// CreateCategory godoc
// @Summary      Create a new category
// @Description  Creates a category. Only the name is taken from the body.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        input body CategoryInput true "Category Info"
// @Success      200  {object}  CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	input, ok := bindCategoryInput(c)
	if !ok {
		return
	}

	category := models.Category{Name: input.Name}
	if err := h.categories.Create(c.Request.Context(), &category); err != nil {
		internalError(c, h.log, "Failed to create category", err)
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(category))
}

// UpdateCategory godoc
// @Summary      Update a category
// @Description  Renames a category and reports the number of affected rows.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Category ID"
// @Param        input body      CategoryInput  true  "New Category Info"
// @Success      200   {object}  UpdateCountResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Category not found"
// @Failure      500   {object}  ErrorResponse
// @Router       /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	input, ok := bindCategoryInput(c)
	if !ok {
		return
	}

	affected, err := h.categories.Update(c.Request.Context(), id, input.Name)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		return
	}
	if err != nil {
		internalError(c, h.log, "Failed to update category", err)
		return
	}

	c.JSON(http.StatusOK, UpdateCountResponse{Updated: affected})
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Deletes a category. Its products are kept and left uncategorized.
// @Tags         categories
// @Produce      json
// @Param        id  path      int  true  "Category ID"
// @Success      200 {object}  DeleteCountResponse
// @Failure      400 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse "Category not found"
// @Failure      500 {object}  ErrorResponse
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.categories.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		return
	}
	if err != nil {
		internalError(c, h.log, "Failed to delete category", err)
		return
	}

	c.JSON(http.StatusOK, DeleteCountResponse{Deleted: deleted})
}
