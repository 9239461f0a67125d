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

type JobApplicationHandler struct {
	service service.JobApplicationService
	log     *logger.Logger
}

func NewJobApplicationHandler(service service.JobApplicationService, log *logger.Logger) *JobApplicationHandler {
	return &JobApplicationHandler{
		service: service,
		log:     log,
	}
}

// @Summary Apply for a job
// @Description Submit a job application as JSON or a url-encoded form
// @Tags JobApplications
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param application body dto.CreateJobApplicationRequest true "Application"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /add-users [post]
func (h *JobApplicationHandler) CreateJobApplication(c *gin.Context) {
	var req dto.CreateJobApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateJobApplication(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List job applications
// @Description List job applications, newest first
// @Tags JobApplications
// @Produce json
// @Security BearerAuth
// @Param filter query types.QueryFilter false "Filter"
// @Success 200 {object} dto.ListJobApplicationsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /users [get]
func (h *JobApplicationHandler) GetJobApplications(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetJobApplications(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
