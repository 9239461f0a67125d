package service

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/testutil"
	"github.com/stretchr/testify/suite"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type ResumeServiceSuite struct {
	testutil.BaseServiceTestSuite
	service *resumeService
	now     time.Time
}

func TestResumeService(t *testing.T) {
	suite.Run(t, new(ResumeServiceSuite))
}

func (s *ResumeServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.now = time.Date(2024, time.June, 15, 6, 0, 0, 0, time.UTC)
	s.setupService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *ResumeServiceSuite) setupService(params ServiceParams) {
	s.service = NewResumeService(params).(*resumeService)
	s.service.now = func() time.Time { return s.now }
}

func (s *ResumeServiceSuite) file(name, contentType string, data []byte) *ResumeFile {
	return &ResumeFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Content:     bytes.NewReader(data),
	}
}

func (s *ResumeServiceSuite) TestUploadStoresPDF() {
	resp, err := s.service.UploadResume(s.GetContext(), s.file("Jane Doe  CV.pdf", "application/pdf", samplePDF))
	s.Require().NoError(err)

	key := fmt.Sprintf("skyup/resumes/%d-Jane-Doe-CV.pdf", s.now.UnixMilli())
	s.Equal(key, resp.PublicID)
	s.Equal("https://uploads.skyup.test/"+key, resp.URL)
	s.Equal("raw", resp.ResourceType)
	s.Equal("pdf", resp.Format)
	s.Equal("Jane Doe  CV.pdf", resp.OriginalName)
	s.EqualValues(len(samplePDF), resp.Bytes)

	stored, ok := s.GetS3().Object(key)
	s.Require().True(ok)
	s.Equal(samplePDF, stored)
}

func (s *ResumeServiceSuite) TestUploadDoesNotOverwriteSameName() {
	first, err := s.service.UploadResume(s.GetContext(), s.file("Jane Doe CV.pdf", "application/pdf", samplePDF))
	s.Require().NoError(err)

	second, err := s.service.UploadResume(s.GetContext(), s.file("Jane Doe CV.pdf", "application/pdf", samplePDF))
	s.Require().NoError(err)

	s.NotEqual(first.PublicID, second.PublicID)
	s.True(strings.HasPrefix(second.PublicID, fmt.Sprintf("skyup/resumes/%d-", s.now.UnixMilli())))
	s.True(strings.HasSuffix(second.PublicID, "-Jane-Doe-CV.pdf"))

	_, ok := s.GetS3().Object(first.PublicID)
	s.True(ok)
	_, ok = s.GetS3().Object(second.PublicID)
	s.True(ok)
}

func (s *ResumeServiceSuite) TestUploadAcceptsContentTypeParameters() {
	_, err := s.service.UploadResume(s.GetContext(), s.file("cv.pdf", "application/pdf; name=cv.pdf", samplePDF))
	s.NoError(err)
}

func (s *ResumeServiceSuite) TestUploadRejections() {
	testCases := []struct {
		name string
		file *ResumeFile
		hint string
	}{
		{
			name: "no_file",
			file: nil,
			hint: "No file uploaded",
		},
		{
			name: "empty_file",
			file: s.file("cv.pdf", "application/pdf", nil),
			hint: "No file uploaded",
		},
		{
			name: "declared_as_text",
			file: s.file("cv.pdf", "text/plain", samplePDF),
			hint: "File type not allowed",
		},
		{
			name: "png_declared_as_pdf",
			file: s.file("cv.pdf", "application/pdf", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")),
			hint: "File type not allowed",
		},
		{
			name: "plain_text_declared_as_pdf",
			file: s.file("cv.pdf", "application/pdf", []byte("just some text")),
			hint: "File type not allowed",
		},
		{
			name: "malformed_content_type",
			file: s.file("cv.pdf", "application/", samplePDF),
			hint: "File type not allowed",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.UploadResume(s.GetContext(), tc.file)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
			s.Equal(tc.hint, ierr.DisplayMessage(err))
		})
	}
}

func (s *ResumeServiceSuite) TestUploadTooLarge() {
	s.GetConfig().Storage.MaxUploadBytes = 2 << 20
	big := append(append([]byte{}, samplePDF...), bytes.Repeat([]byte{' '}, 2<<20)...)

	_, err := s.service.UploadResume(s.GetContext(), s.file("cv.pdf", "application/pdf", big))
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Equal("File too large, the limit is 2 MB", ierr.DisplayMessage(err))
}

func (s *ResumeServiceSuite) TestUploadTooLargeWithUnderstatedSize() {
	s.GetConfig().Storage.MaxUploadBytes = 64
	f := s.file("cv.pdf", "application/pdf", append(append([]byte{}, samplePDF...), strings.Repeat("x", 64)...))
	f.Size = 10

	_, err := s.service.UploadResume(s.GetContext(), f)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ResumeServiceSuite) TestUploadWithoutStorage() {
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.S3 = nil
	s.setupService(params)

	_, err := s.service.UploadResume(s.GetContext(), s.file("cv.pdf", "application/pdf", samplePDF))
	s.Require().Error(err)
	s.True(errors.Is(err, ierr.ErrSystem))
	s.Equal("Upload failed", ierr.DisplayMessage(err))
}

func (s *ResumeServiceSuite) TestUploadStorageFailure() {
	s.GetS3().Err = errors.New("connection reset by peer")

	_, err := s.service.UploadResume(s.GetContext(), s.file("cv.pdf", "application/pdf", samplePDF))
	s.Require().Error(err)
	s.True(errors.Is(err, ierr.ErrHTTPClient))
	s.Equal("Upload failed", ierr.DisplayMessage(err))
}
