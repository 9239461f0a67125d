package service

import (
	"testing"

	"github.com/skyup-digital/skyup-api/internal/api/dto"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ContactServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ContactService
}

func TestContactService(t *testing.T) {
	suite.Run(t, new(ContactServiceSuite))
}

func (s *ContactServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewContactService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *ContactServiceSuite) TestCreateContact() {
	testCases := []struct {
		name    string
		request dto.CreateContactRequest
		wantErr bool
	}{
		{
			name: "full_submission",
			request: dto.CreateContactRequest{
				Name:    "Ravi Kumar",
				Email:   "ravi@example.com",
				Mobile:  "9123456789",
				Subject: "Website quote",
				Message: "Please call me back.",
			},
		},
		{
			name: "without_optional_fields",
			request: dto.CreateContactRequest{
				Name:    "Ravi Kumar",
				Email:   "ravi@example.com",
				Message: "Hello",
			},
		},
		{
			name: "missing_message",
			request: dto.CreateContactRequest{
				Name:  "Ravi Kumar",
				Email: "ravi@example.com",
			},
			wantErr: true,
		},
		{
			name: "mobile_not_digits",
			request: dto.CreateContactRequest{
				Name:    "Ravi Kumar",
				Email:   "ravi@example.com",
				Mobile:  "+91 91234",
				Message: "Hello",
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreateContact(testutil.SetupAnonymousContext(), &tc.request)
			if tc.wantErr {
				s.Require().Error(err)
				s.True(ierr.IsValidation(err))
				return
			}
			s.Require().NoError(err)
			s.Equal("Submitted successfully", resp.Message)
		})
	}

	resp, err := s.service.GetContacts(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Equal(2, resp.Pagination.Total)
	s.Len(resp.Items, 2)
}
