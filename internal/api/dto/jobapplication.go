package dto

import (
	"strings"

	"github.com/skyup-digital/skyup-api/internal/domain/jobapplication"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/skyup-digital/skyup-api/internal/validator"
)

// CreateJobApplicationRequest is posted by the careers form either as JSON or
// as a url-encoded form.
type CreateJobApplicationRequest struct {
	JobTitle       string       `json:"jobTitle" form:"jobTitle" validate:"omitempty,max=255"`
	FirstName      string       `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName       string       `json:"last_name" form:"last_name" validate:"required,max=100"`
	Email          string       `json:"email" form:"email" validate:"required,email"`
	Mobile         types.Digits `json:"mobile" form:"mobile" validate:"required,digits,max=15"`
	StreetAddress  string       `json:"street_address" form:"street_address" validate:"required,max=500"`
	City           string       `json:"city" form:"city" validate:"required,max=100"`
	State          string       `json:"state" form:"state" validate:"required,max=100"`
	Zipcode        types.Digits `json:"zipcode" form:"zipcode" validate:"required,digits,max=10"`
	Country        string       `json:"country" form:"country" validate:"required,max=100"`
	LinkedIn       string       `json:"linkedin" form:"linkedin" validate:"omitempty,max=500"`
	Portfolio      string       `json:"portfolio" form:"portfolio" validate:"omitempty,max=500"`
	ResumeURL      string       `json:"resumeUrl" form:"resumeUrl" validate:"omitempty,url"`
	ResumePublicID string       `json:"resumePublicId" form:"resumePublicId" validate:"omitempty,max=500"`
}

func (r *CreateJobApplicationRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateJobApplicationRequest) ToJobApplication() *jobapplication.JobApplication {
	return jobapplication.NewJobApplication(jobapplication.JobApplication{
		JobTitle:       strings.TrimSpace(r.JobTitle),
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		Email:          strings.TrimSpace(r.Email),
		Mobile:         strings.TrimSpace(r.Mobile.String()),
		StreetAddress:  strings.TrimSpace(r.StreetAddress),
		City:           strings.TrimSpace(r.City),
		State:          strings.TrimSpace(r.State),
		Zipcode:        strings.TrimSpace(r.Zipcode.String()),
		Country:        strings.TrimSpace(r.Country),
		LinkedIn:       strings.TrimSpace(r.LinkedIn),
		Portfolio:      strings.TrimSpace(r.Portfolio),
		ResumeURL:      strings.TrimSpace(r.ResumeURL),
		ResumePublicID: strings.TrimSpace(r.ResumePublicID),
	})
}

type JobApplicationResponse struct {
	*jobapplication.JobApplication
}

type ListJobApplicationsResponse = types.ListResponse[*JobApplicationResponse]
