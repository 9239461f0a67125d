package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/skyup-digital/skyup-api/internal/api/dto"
	"github.com/skyup-digital/skyup-api/internal/domain/jobapplication"
	"github.com/skyup-digital/skyup-api/internal/types"
)

type JobApplicationService interface {
	CreateJobApplication(ctx context.Context, req *dto.CreateJobApplicationRequest) (*dto.SuccessResponse, error)
	GetJobApplications(ctx context.Context, filter *types.QueryFilter) (*dto.ListJobApplicationsResponse, error)
}

type jobApplicationService struct {
	ServiceParams
}

func NewJobApplicationService(params ServiceParams) JobApplicationService {
	return &jobApplicationService{ServiceParams: params}
}

func (s *jobApplicationService) CreateJobApplication(ctx context.Context, req *dto.CreateJobApplicationRequest) (*dto.SuccessResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	application := req.ToJobApplication()
	if err := s.JobApplicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	s.Logger.Infow("job application received",
		"job_application_id", application.ID,
		"job_title", application.JobTitle,
	)

	return &dto.SuccessResponse{Message: "Applied successfully"}, nil
}

func (s *jobApplicationService) GetJobApplications(ctx context.Context, filter *types.QueryFilter) (*dto.ListJobApplicationsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	applications, err := s.JobApplicationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.JobApplicationRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(applications, func(a *jobapplication.JobApplication, _ int) *dto.JobApplicationResponse {
		return &dto.JobApplicationResponse{JobApplication: a}
	})

	response := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}
