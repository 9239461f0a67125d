package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"regexp"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/skyup-digital/skyup-api/internal/api/dto"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/s3"
	"github.com/skyup-digital/skyup-api/internal/types"
)

const (
	mimePDF = "application/pdf"

	// sniffLen is enough for filetype to recognise a PDF header
	sniffLen = 262
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ResumeFile is an uploaded resume as received from the multipart form
type ResumeFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ResumeService interface {
	UploadResume(ctx context.Context, file *ResumeFile) (*dto.ResumeUploadResponse, error)
}

type resumeService struct {
	ServiceParams
	now func() time.Time
}

func NewResumeService(params ServiceParams) ResumeService {
	return &resumeService{ServiceParams: params, now: time.Now}
}

func (s *resumeService) UploadResume(ctx context.Context, file *ResumeFile) (*dto.ResumeUploadResponse, error) {
	if file == nil || file.Content == nil {
		return nil, ierr.NewError("no file uploaded").
			WithHint("No file uploaded").
			Mark(ierr.ErrValidation)
	}

	maxBytes := s.Config.Storage.MaxUploadBytes
	if file.Size > maxBytes {
		return nil, fileTooLarge(file.Size, maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(file.Content, maxBytes+1))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read uploaded file").
			Mark(ierr.ErrValidation)
	}
	if int64(len(data)) > maxBytes {
		return nil, fileTooLarge(int64(len(data)), maxBytes)
	}
	if len(data) == 0 {
		return nil, ierr.NewError("empty file").
			WithHint("No file uploaded").
			Mark(ierr.ErrValidation)
	}

	if err := checkPDF(file.ContentType, data); err != nil {
		return nil, err
	}

	if s.S3 == nil {
		return nil, ierr.NewError("resume storage is not configured").
			WithHint("Upload failed").
			Mark(ierr.ErrSystem)
	}

	id := s.objectID(ctx, file.Name)

	stored, err := s.S3.UploadDocument(ctx, s3.NewPdfDocument(id, data, s3.DocumentTypeResume))
	if err != nil {
		s.Logger.Errorw("resume upload failed",
			"file_name", file.Name,
			"error", err,
		)
		s.Sentry.CaptureException(ctx, err)
		return nil, ierr.NewErrorf("resume upload failed: %v", err).
			WithHint("Upload failed").
			Mark(ierr.ErrHTTPClient)
	}

	return &dto.ResumeUploadResponse{
		Message:      "Uploaded successfully",
		URL:          stored.URL,
		PublicID:     stored.Key,
		ResourceType: "raw",
		Bytes:        stored.Bytes,
		Format:       "pdf",
		OriginalName: file.Name,
	}, nil
}

// objectID names the stored object <unix ms>-<name>. A name already taken
// in the same millisecond gets a random infix so nothing is overwritten.
func (s *resumeService) objectID(ctx context.Context, name string) string {
	ms := s.now().UnixMilli()
	name = whitespaceRun.ReplaceAllString(name, "-")
	id := fmt.Sprintf("%d-%s", ms, name)

	taken, err := s.S3.Exists(ctx, id, s3.DocumentTypeResume)
	if err != nil {
		// the upload itself reports a storage outage
		s.Logger.Warnw("resume existence check failed", "object_id", id, "error", err)
		return id
	}
	if !taken {
		return id
	}

	ulid := types.GenerateUUID()
	return fmt.Sprintf("%d-%s-%s", ms, strings.ToLower(ulid[len(ulid)-6:]), name)
}

// checkPDF requires both the declared type and the sniffed content to be PDF
func checkPDF(contentType string, data []byte) error {
	declared, _, err := mime.ParseMediaType(contentType)
	if err != nil || declared != mimePDF {
		return fileTypeNotAllowed(contentType)
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	kind, err := filetype.Match(head)
	if err != nil || kind.MIME.Value != mimePDF {
		return fileTypeNotAllowed(kind.MIME.Value)
	}
	return nil
}

func fileTypeNotAllowed(got string) error {
	return ierr.NewErrorf("file type %q not allowed", got).
		WithHint("File type not allowed").
		WithReportableDetails(map[string]any{
			"allowed": []string{mimePDF},
		}).
		Mark(ierr.ErrValidation)
}

func fileTooLarge(size, limit int64) error {
	return ierr.NewErrorf("file of %d bytes exceeds %d", size, limit).
		WithHintf("File too large, the limit is %d MB", limit>>20).
		WithReportableDetails(map[string]any{
			"max_bytes": limit,
		}).
		Mark(ierr.ErrValidation)
}
