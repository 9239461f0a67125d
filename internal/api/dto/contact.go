package dto

import (
	"strings"

	"github.com/skyup-digital/skyup-api/internal/domain/contact"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/skyup-digital/skyup-api/internal/validator"
)

type CreateContactRequest struct {
	Name    string       `json:"name" form:"name" validate:"required,max=255"`
	Email   string       `json:"email" form:"email" validate:"required,email"`
	Mobile  types.Digits `json:"mobile" form:"mobile" validate:"omitempty,digits,max=15"`
	Subject string       `json:"subject" form:"subject" validate:"omitempty,max=255"`
	Message string       `json:"message" form:"message" validate:"required,max=5000"`
}

func (r *CreateContactRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateContactRequest) ToContact() *contact.Contact {
	return contact.NewContact(contact.Contact{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Mobile:  strings.TrimSpace(r.Mobile.String()),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	})
}

type ContactResponse struct {
	*contact.Contact
}

type ListContactsResponse = types.ListResponse[*ContactResponse]
