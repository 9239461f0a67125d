package service

import (
	"github.com/skyup-digital/skyup-api/internal/auth"
	"github.com/skyup-digital/skyup-api/internal/testutil"
)

func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	provider, err := auth.NewProvider(s.GetConfig())
	s.Require().NoError(err)

	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetS3(),
		nil,
		provider,
		stores.ReceiptRepo,
		stores.JobApplicationRepo,
		stores.ContactRepo,
	)
}
