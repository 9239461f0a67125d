package postgres

import (
	"context"
	"fmt"

	"github.com/skyup-digital/skyup-api/internal/domain/jobapplication"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
	"github.com/skyup-digital/skyup-api/internal/types"
)

const jobApplicationColumns = `id, job_title, first_name, last_name, email, mobile, street_address,
	city, state, zipcode, country, linkedin, portfolio, resume_url, resume_public_id, created_at`

type jobApplicationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewJobApplicationRepository(db *postgres.DB, logger *logger.Logger) jobapplication.Repository {
	return &jobApplicationRepository{db: db, logger: logger}
}

func (r *jobApplicationRepository) Create(ctx context.Context, a *jobapplication.JobApplication) error {
	span := StartRepositorySpan(ctx, "job_application", "create", nil)
	defer FinishSpan(span)

	query := `
	INSERT INTO job_applications (` + jobApplicationColumns + `)
	VALUES (:id, :job_title, :first_name, :last_name, :email, :mobile, :street_address,
		:city, :state, :zipcode, :country, :linkedin, :portfolio, :resume_url, :resume_public_id, :created_at)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, a); err != nil {
		SetSpanError(span, err)
		return ierr.WithError(err).
			WithHint("Failed to save job application").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Infow("created job application", "job_application_id", a.ID)
	return nil
}

func (r *jobApplicationRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*jobapplication.JobApplication, error) {
	span := StartRepositorySpan(ctx, "job_application", "list", nil)
	defer FinishSpan(span)

	query := fmt.Sprintf(`SELECT %s FROM job_applications ORDER BY %s LIMIT $1 OFFSET $2`,
		jobApplicationColumns, orderBy(filter))

	items := make([]*jobapplication.JobApplication, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &items, query, filter.GetLimit(), filter.GetOffset()); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list job applications").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *jobApplicationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, `SELECT COUNT(*) FROM job_applications`); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count job applications").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
