package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/service"
	appErrors "github.com/abuzarban/school-admin/pkg/errors"
	"github.com/abuzarban/school-admin/pkg/response"
)

// InvoiceHandler exposes invoice endpoints including bulk class
// generation and receipt export.
type InvoiceHandler struct {
	invoices *service.InvoiceService
	exports  *service.ExportService
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(invoices *service.InvoiceService, exports *service.ExportService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, exports: exports}
}

// List godoc
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Param studentId query string false "Filter by student"
// @Param session query string false "Filter by session"
// @Param term query string false "Filter by term"
// @Success 200 {object} response.Envelope
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	filter := models.InvoiceFilter{
		StudentID: c.Query("studentId"),
		Session:   c.Query("session"),
		Term:      c.Query("term"),
	}
	invoices, err := h.invoices.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, invoices, nil)
}

// Get godoc
// @Summary Get invoice by ID
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} response.Envelope
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	invoice, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, invoice, nil)
}

// Create godoc
// @Summary Create an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param payload body service.InvoiceRequest true "Invoice payload"
// @Success 201 {object} response.Envelope
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req service.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	invoice, err := h.invoices.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, invoice)
}

// Update godoc
// @Summary Update an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param payload body service.InvoiceRequest true "Edit payload"
// @Success 200 {object} response.Envelope
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	invoice, err := h.invoices.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, invoice, nil)
}

// Delete godoc
// @Summary Delete an invoice
// @Tags Invoices
// @Param id path int true "Invoice ID"
// @Success 204
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.invoices.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GenerateForClass godoc
// @Summary Generate compulsory invoices for every student in a class
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body service.GenerateClassInvoicesRequest true "Session and term"
// @Success 201 {object} response.Envelope
// @Router /classes/{id}/invoices [post]
func (h *InvoiceHandler) GenerateForClass(c *gin.Context) {
	classID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.GenerateClassInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.invoices.GenerateForClass(c.Request.Context(), classID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"invoices_created": created}, nil)
}

// ReceiptPDF godoc
// @Summary Download an invoice receipt as PDF
// @Tags Invoices
// @Produce application/pdf
// @Param id path int true "Invoice ID"
// @Success 200 {file} binary
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) ReceiptPDF(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.exports.InvoiceReceiptPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", out)
}
