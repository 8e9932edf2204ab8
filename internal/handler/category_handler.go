package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/service"
	appErrors "github.com/abuzarban/school-admin/pkg/errors"
	"github.com/abuzarban/school-admin/pkg/response"
)

// CategoryHandler exposes payment category endpoints.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler constructs CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List godoc
// @Summary List payment categories
// @Tags PaymentCategories
// @Produce json
// @Param type query string false "Filter by type (compulsory|optional)"
// @Success 200 {object} response.Envelope
// @Router /payment-categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), models.CategoryType(c.Query("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}

// Get godoc
// @Summary Get payment category by ID
// @Tags PaymentCategories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /payment-categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}

// Create godoc
// @Summary Create a payment category
// @Tags PaymentCategories
// @Accept json
// @Produce json
// @Param payload body service.CategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Router /payment-categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// Update godoc
// @Summary Update a payment category
// @Tags PaymentCategories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param payload body service.CategoryRequest true "Edit payload"
// @Success 200 {object} response.Envelope
// @Router /payment-categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	category, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}

// Delete godoc
// @Summary Delete a payment category
// @Tags PaymentCategories
// @Param id path int true "Category ID"
// @Success 204
// @Router /payment-categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
