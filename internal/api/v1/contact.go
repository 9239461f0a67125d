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

type ContactHandler struct {
	service service.ContactService
	log     *logger.Logger
}

func NewContactHandler(service service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log,
	}
}

// @Summary Submit the contact form
// @Tags Contacts
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param contact body dto.CreateContactRequest true "Contact"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /add-contact [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateContact(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List contact submissions
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param filter query types.QueryFilter false "Filter"
// @Success 200 {object} dto.ListContactsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /contacts [get]
func (h *ContactHandler) GetContacts(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetContacts(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
