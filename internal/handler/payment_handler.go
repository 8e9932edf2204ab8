package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/service"
	appErrors "github.com/abuzarban/school-admin/pkg/errors"
	"github.com/abuzarban/school-admin/pkg/response"
)

// PaymentHandler exposes payment endpoints including ledger summaries
// and CSV export.
type PaymentHandler struct {
	payments *service.PaymentService
	exports  *service.ExportService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService, exports *service.ExportService) *PaymentHandler {
	return &PaymentHandler{payments: payments, exports: exports}
}

func paymentFilterFromQuery(c *gin.Context) (models.PaymentFilter, error) {
	var filter models.PaymentFilter
	filter.StudentID = c.Query("studentId")
	filter.Type = models.CategoryType(c.Query("type"))
	if categoryID, err := strconv.ParseInt(c.Query("categoryId"), 10, 64); err == nil {
		filter.CategoryID = categoryID
	}
	filter.OutstandingOnly = c.Query("outstanding") == "true"

	from, err := parseDateQuery(c, "start")
	if err != nil {
		return filter, err
	}
	to, err := parseDateQuery(c, "end")
	if err != nil {
		return filter, err
	}
	// An end date given as YYYY-MM-DD is inclusive of that whole day.
	if !to.IsZero() && to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	filter.From = from
	filter.To = to
	return filter, nil
}

// List godoc
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param studentId query string false "Filter by student"
// @Param categoryId query int false "Filter by category"
// @Param type query string false "Filter by type (compulsory|optional)"
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Param outstanding query bool false "Only payments with a balance due"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	filter, err := paymentFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payments, err := h.payments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments, nil)
}

// Get godoc
// @Summary Get payment by ID
// @Tags Payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	payment, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}

// Create godoc
// @Summary Record a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.PaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payment, err := h.payments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// Update godoc
// @Summary Update a payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param payload body service.PaymentRequest true "Edit payload"
// @Success 200 {object} response.Envelope
// @Router /payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payment, err := h.payments.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}

// Delete godoc
// @Summary Delete a payment
// @Tags Payments
// @Param id path int true "Payment ID"
// @Success 204
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// OverallSummary godoc
// @Summary Overall paid and outstanding totals
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments/summary [get]
func (h *PaymentHandler) OverallSummary(c *gin.Context) {
	totals, err := h.payments.OverallTotals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, totals, nil)
}

// StudentSummary godoc
// @Summary Per-student ledger summary
// @Tags Payments
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /payments/summary/{studentId} [get]
func (h *PaymentHandler) StudentSummary(c *gin.Context) {
	summary, err := h.payments.StudentSummary(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// ExportCSV godoc
// @Summary Download filtered payments as CSV
// @Tags Payments
// @Produce text/csv
// @Success 200 {file} binary
// @Router /payments/export [get]
func (h *PaymentHandler) ExportCSV(c *gin.Context) {
	filter, err := paymentFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.exports.PaymentsCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=payments.csv")
	c.Data(http.StatusOK, "text/csv", out)
}
