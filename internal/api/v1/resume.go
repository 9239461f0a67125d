package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/service"
)

const (
	resumeFormField = "file"

	// multipartOverhead leaves room for boundaries and headers around the file
	multipartOverhead = 1 << 20
)

type ResumeHandler struct {
	service        service.ResumeService
	maxUploadBytes int64
	log            *logger.Logger
}

func NewResumeHandler(service service.ResumeService, maxUploadBytes int64, log *logger.Logger) *ResumeHandler {
	return &ResumeHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// @Summary Upload a resume
// @Description Upload a PDF resume to object storage
// @Tags Resumes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF resume"
// @Success 200 {object} dto.ResumeUploadResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /resume [post]
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	header, err := c.FormFile(resumeFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(ierr.WithError(err).
				WithHintf("File too large, the limit is %d MB", h.maxUploadBytes>>20).
				Mark(ierr.ErrValidation))
			return
		}

		c.Error(ierr.WithError(err).
			WithHint("No file uploaded").
			Mark(ierr.ErrValidation))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read uploaded file").
			Mark(ierr.ErrValidation))
		return
	}
	defer file.Close()

	resp, err := h.service.UploadResume(c.Request.Context(), &service.ResumeFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
