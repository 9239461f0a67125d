package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/skyup-digital/skyup-api/internal/api/dto"
	"github.com/skyup-digital/skyup-api/internal/domain/contact"
	"github.com/skyup-digital/skyup-api/internal/types"
)

type ContactService interface {
	CreateContact(ctx context.Context, req *dto.CreateContactRequest) (*dto.SuccessResponse, error)
	GetContacts(ctx context.Context, filter *types.QueryFilter) (*dto.ListContactsResponse, error)
}

type contactService struct {
	ServiceParams
}

func NewContactService(params ServiceParams) ContactService {
	return &contactService{ServiceParams: params}
}

func (s *contactService) CreateContact(ctx context.Context, req *dto.CreateContactRequest) (*dto.SuccessResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToContact()
	if err := s.ContactRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("contact submission received", "contact_id", c.ID)

	return &dto.SuccessResponse{Message: "Submitted successfully"}, nil
}

func (s *contactService) GetContacts(ctx context.Context, filter *types.QueryFilter) (*dto.ListContactsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	contacts, err := s.ContactRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.ContactRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(contacts, func(c *contact.Contact, _ int) *dto.ContactResponse {
		return &dto.ContactResponse{Contact: c}
	})

	response := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}
