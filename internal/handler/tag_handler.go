package handler

import (
	"errors"
	"net/http"

	"storefront/backend/internal/models"
	"storefront/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// region --- DTOs ---

type TagInput struct {
	Name string `json:"name" binding:"required" example:"rock music"`
}

// TaggedProductResponse is the product projection embedded in a tag. Join attributes never appear here.
type TaggedProductResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price" example:"12.99"`
}

type TagResponse struct {
	ID       uint                    `json:"id"`
	Name     string                  `json:"name"`
	Products []TaggedProductResponse `json:"products"`
}

func newTagResponse(tag models.Tag) TagResponse {
	products := make([]TaggedProductResponse, 0, len(tag.Products))
	for _, p := range tag.Products {
		if p != nil {
			products = append(products, TaggedProductResponse{ID: p.ID, Name: p.Name, Price: formatPrice(p.Price)})
		}
	}

	return TagResponse{
		ID:       tag.ID,
		Name:     tag.Name,
		Products: products,
	}
}

// endregion

const invalidTagName = "Name is required and must be a string."

// TagHandler serves the /tags resource.
type TagHandler struct {
	tags repository.TagRepository
	log  *zap.Logger
}

func NewTagHandler(tags repository.TagRepository, log *zap.Logger) *TagHandler {
	return &TagHandler{tags: tags, log: log.Named("tags")}
}

// Register mounts the tag routes on rg.
func (h *TagHandler) Register(rg *gin.RouterGroup) {
	tags := rg.Group("/tags")
	{
		tags.GET("", h.GetTags)
		tags.GET("/:id", h.GetTagByID)
		tags.POST("", h.CreateTag)
		tags.PUT("/:id", h.UpdateTag)
		tags.DELETE("/:id", h.DeleteTag)
	}
}

func bindTagInput(c *gin.Context) (TagInput, bool) {
	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalidTagName})
		return input, false
	}
	return input, true
}

// GetTags godoc
// @Summary      Get all tags
// @Description  Retrieves all tags with their tagged products (id, name and price only).
// @Tags         tags
// @Produce      json
// @Success      200  {array}   TagResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /tags [get]
func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "Failed to list tags", err)
		return
	}

	response := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, newTagResponse(tag))
	}
	c.JSON(http.StatusOK, response)
}

// GetTagByID godoc
// @Summary      Get a single tag by ID
// @Description  Retrieves one tag with its tagged products.
// @Tags         tags
// @Produce      json
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /tags/{id} [get]
func (h *TagHandler) GetTagByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tag, err := h.tags.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Tag not found"})
		return
	}
	if err != nil {
		internalError(c, h.log, "Failed to fetch tag", err)
		return
	}

	c.JSON(http.StatusOK, newTagResponse(*tag))
}

// CreateTag godoc
// @Summary      Create a new tag
// @Description  Creates a tag and returns it with its (initially empty) product list.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        input body TagInput true "Tag Info"
// @Success      201  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	input, ok := bindTagInput(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	tag := models.Tag{Name: input.Name}
	if err := h.tags.Create(ctx, &tag); err != nil {
		internalError(c, h.log, "Failed to create tag", err)
		return
	}

	created, err := h.tags.Get(ctx, tag.ID)
	if err != nil {
		internalError(c, h.log, "Failed to reload created tag", err)
		return
	}

	c.JSON(http.StatusCreated, newTagResponse(*created))
}

// UpdateTag godoc
// @Summary      Update a tag
// @Description  Renames an existing tag and returns it with its tagged products.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id   path      int      true  "Tag ID"
// @Param        input body TagInput true "New Tag Info"
// @Success      200  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /tags/{id} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	input, ok := bindTagInput(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	err := h.tags.Update(ctx, id, input.Name)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Tag not found"})
		return
	}
	if err != nil {
		internalError(c, h.log, "Failed to update tag", err)
		return
	}

	updated, err := h.tags.Get(ctx, id)
	if err != nil {
		internalError(c, h.log, "Failed to reload updated tag", err)
		return
	}

	c.JSON(http.StatusOK, newTagResponse(*updated))
}

// DeleteTag godoc
// @Summary      Delete a tag
// @Description  Deletes an existing tag and its product links.
// @Tags         tags
// @Param        id   path      int  true  "Tag ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.tags.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Tag not found"})
		return
	}
	if err != nil {
		internalError(c, h.log, "Failed to delete tag", err)
		return
	}

	c.Status(http.StatusNoContent)
}
