package contact

import (
	"time"

	"github.com/skyup-digital/skyup-api/internal/types"
)

// Contact is a message left through the website contact form.
type Contact struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Mobile    string    `db:"mobile" json:"mobile,omitempty"`
	Subject   string    `db:"subject" json:"subject,omitempty"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func NewContact(c Contact) *Contact {
	c.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTACT)
	c.CreatedAt = time.Now().UTC()
	return &c
}
