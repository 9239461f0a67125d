package postgres

import (
	"context"
	"fmt"

	"github.com/skyup-digital/skyup-api/internal/domain/contact"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
	"github.com/skyup-digital/skyup-api/internal/types"
)

const contactColumns = `id, name, email, mobile, subject, message, created_at`

type contactRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewContactRepository(db *postgres.DB, logger *logger.Logger) contact.Repository {
	return &contactRepository{db: db, logger: logger}
}

func (r *contactRepository) Create(ctx context.Context, c *contact.Contact) error {
	query := `
	INSERT INTO contacts (` + contactColumns + `)
	VALUES (:id, :name, :email, :mobile, :subject, :message, :created_at)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save contact submission").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Infow("created contact submission", "contact_id", c.ID)
	return nil
}

func (r *contactRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*contact.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts ORDER BY %s LIMIT $1 OFFSET $2`,
		contactColumns, orderBy(filter))

	items := make([]*contact.Contact, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &items, query, filter.GetLimit(), filter.GetOffset()); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list contacts").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *contactRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, `SELECT COUNT(*) FROM contacts`); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count contacts").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
