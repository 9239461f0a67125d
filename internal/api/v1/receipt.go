package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyup-digital/skyup-api/internal/api/dto"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/service"
	"github.com/skyup-digital/skyup-api/internal/types"
)

type ReceiptHandler struct {
	service service.ReceiptService
	log     *logger.Logger
}

func NewReceiptHandler(service service.ReceiptService, log *logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a receipt
// @Description Issue the next invoice number and store the receipt
// @Tags Receipts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param receipt body dto.CreateReceiptRequest true "Receipt"
// @Success 201 {object} dto.CreateReceiptResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /receipt [post]
func (h *ReceiptHandler) CreateReceipt(c *gin.Context) {
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateReceipt(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List receipts
// @Description List receipts, newest first
// @Tags Receipts
// @Produce json
// @Security BearerAuth
// @Param filter query types.QueryFilter false "Filter"
// @Success 200 {object} dto.ListReceiptsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /receipts [get]
func (h *ReceiptHandler) GetReceipts(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetReceipts(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Last invoice
// @Description Last issued serial and a preview of the next invoice number. Nothing is reserved.
// @Tags Receipts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LastInvoiceResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /api/last-invoice [get]
func (h *ReceiptHandler) GetLastInvoice(c *gin.Context) {
	resp, err := h.service.GetLastInvoice(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
