package service

import (
	"encoding/json"
	"testing"

	"github.com/skyup-digital/skyup-api/internal/api/dto"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/testutil"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/stretchr/testify/suite"
)

type JobApplicationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service JobApplicationService
}

func TestJobApplicationService(t *testing.T) {
	suite.Run(t, new(JobApplicationServiceSuite))
}

func (s *JobApplicationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewJobApplicationService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *JobApplicationServiceSuite) request() *dto.CreateJobApplicationRequest {
	var req dto.CreateJobApplicationRequest
	s.Require().NoError(json.Unmarshal([]byte(`{
		"jobTitle": "Frontend Developer",
		"first_name": " Asha ",
		"last_name": "Rao",
		"email": "asha@example.com",
		"mobile": 9876543210,
		"street_address": "12 MG Road",
		"city": "Bengaluru",
		"state": "Karnataka",
		"zipcode": "060001",
		"country": "India",
		"resumeUrl": "https://uploads.skyup.test/skyup/resumes/1-cv.pdf",
		"resumePublicId": "skyup/resumes/1-cv.pdf"
	}`), &req))
	return &req
}

func (s *JobApplicationServiceSuite) TestCreateJobApplication() {
	resp, err := s.service.CreateJobApplication(testutil.SetupAnonymousContext(), s.request())
	s.Require().NoError(err)
	s.Equal("Applied successfully", resp.Message)

	items, err := s.GetStores().JobApplicationRepo.List(s.GetContext(), types.NewDefaultQueryFilter())
	s.Require().NoError(err)
	s.Require().Len(items, 1)

	a := items[0]
	s.NotEmpty(a.ID)
	s.Equal("Asha", a.FirstName)
	s.Equal("9876543210", a.Mobile)
	s.Equal("060001", a.Zipcode)
	s.Equal("skyup/resumes/1-cv.pdf", a.ResumePublicID)
	s.False(a.CreatedAt.IsZero())
}

func (s *JobApplicationServiceSuite) TestCreateJobApplicationValidation() {
	testCases := []struct {
		name   string
		mutate func(r *dto.CreateJobApplicationRequest)
		field  string
	}{
		{
			name:   "missing_first_name",
			mutate: func(r *dto.CreateJobApplicationRequest) { r.FirstName = "" },
			field:  "first_name",
		},
		{
			name:   "invalid_email",
			mutate: func(r *dto.CreateJobApplicationRequest) { r.Email = "asha" },
			field:  "email",
		},
		{
			name:   "mobile_with_letters",
			mutate: func(r *dto.CreateJobApplicationRequest) { r.Mobile = "98765abc10" },
			field:  "mobile",
		},
		{
			name:   "zipcode_missing",
			mutate: func(r *dto.CreateJobApplicationRequest) { r.Zipcode = "" },
			field:  "zipcode",
		},
		{
			name:   "resume_url_not_a_url",
			mutate: func(r *dto.CreateJobApplicationRequest) { r.ResumeURL = "cv.pdf" },
			field:  "resumeUrl",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := s.request()
			tc.mutate(req)

			_, err := s.service.CreateJobApplication(s.GetContext(), req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
			s.Contains(ierr.SafeDetails(err), tc.field)
		})
	}

	count, err := s.GetStores().JobApplicationRepo.Count(s.GetContext())
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *JobApplicationServiceSuite) TestGetJobApplications() {
	for i := 0; i < 3; i++ {
		_, err := s.service.CreateJobApplication(s.GetContext(), s.request())
		s.Require().NoError(err)
	}

	resp, err := s.service.GetJobApplications(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(3, resp.Pagination.Total)
	s.Equal(types.FILTER_DEFAULT_LIMIT, resp.Pagination.Limit)

	offset := 2
	resp, err = s.service.GetJobApplications(s.GetContext(), &types.QueryFilter{Offset: &offset})
	s.Require().NoError(err)
	s.Len(resp.Items, 1)
}
