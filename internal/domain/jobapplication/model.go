package jobapplication

import (
	"time"

	"github.com/skyup-digital/skyup-api/internal/types"
)

// JobApplication is a candidate's submission from the careers form.
type JobApplication struct {
	ID             string    `db:"id" json:"id"`
	JobTitle       string    `db:"job_title" json:"jobTitle,omitempty"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Email          string    `db:"email" json:"email"`
	Mobile         string    `db:"mobile" json:"mobile"`
	StreetAddress  string    `db:"street_address" json:"street_address"`
	City           string    `db:"city" json:"city"`
	State          string    `db:"state" json:"state"`
	Zipcode        string    `db:"zipcode" json:"zipcode"`
	Country        string    `db:"country" json:"country"`
	LinkedIn       string    `db:"linkedin" json:"linkedin,omitempty"`
	Portfolio      string    `db:"portfolio" json:"portfolio,omitempty"`
	ResumeURL      string    `db:"resume_url" json:"resumeUrl,omitempty"`
	ResumePublicID string    `db:"resume_public_id" json:"resumePublicId,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// NewJobApplication stamps a fresh id and creation time on a.
func NewJobApplication(a JobApplication) *JobApplication {
	a.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_JOB_APPLICATION)
	a.CreatedAt = time.Now().UTC()
	return &a
}
