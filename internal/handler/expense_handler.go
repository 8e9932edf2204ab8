package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/service"
	appErrors "github.com/abuzarban/school-admin/pkg/errors"
	"github.com/abuzarban/school-admin/pkg/response"
)

// ExpenseHandler exposes expense endpoints.
type ExpenseHandler struct {
	expenses *service.ExpenseService
	exports  *service.ExportService
}

// NewExpenseHandler constructs ExpenseHandler.
func NewExpenseHandler(expenses *service.ExpenseService, exports *service.ExportService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, exports: exports}
}

func expenseFilterFromQuery(c *gin.Context) (models.ExpenseFilter, error) {
	var filter models.ExpenseFilter
	filter.Category = c.Query("category")
	from, err := parseDateQuery(c, "start")
	if err != nil {
		return filter, err
	}
	to, err := parseDateQuery(c, "end")
	if err != nil {
		return filter, err
	}
	filter.From = from
	filter.To = to
	return filter, nil
}

// List godoc
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Param category query string false "Filter by category"
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	filter, err := expenseFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	expenses, err := h.expenses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, expenses, nil)
}

// Get godoc
// @Summary Get expense by ID
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} response.Envelope
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	expense, err := h.expenses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, expense, nil)
}

// Create godoc
// @Summary Record an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param payload body service.ExpenseRequest true "Expense payload"
// @Success 201 {object} response.Envelope
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req service.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	expense, err := h.expenses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, expense)
}

// Update godoc
// @Summary Update an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param payload body service.ExpenseRequest true "Edit payload"
// @Success 200 {object} response.Envelope
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	expense, err := h.expenses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, expense, nil)
}

// Delete godoc
// @Summary Delete an expense
// @Tags Expenses
// @Param id path int true "Expense ID"
// @Success 204
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Summary godoc
// @Summary Total expenses over a period
// @Tags Expenses
// @Produce json
// @Param category query string false "Filter by category"
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	filter, err := expenseFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.expenses.Summary(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// ExportCSV godoc
// @Summary Download filtered expenses as CSV
// @Tags Expenses
// @Produce text/csv
// @Success 200 {file} binary
// @Router /expenses/export [get]
func (h *ExpenseHandler) ExportCSV(c *gin.Context) {
	filter, err := expenseFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.exports.ExpensesCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=expenses.csv")
	c.Data(http.StatusOK, "text/csv", out)
}
