package testutil

import (
	"context"
	"time"

	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/skyup-digital/skyup-api/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the in-memory repositories for testing
type Stores struct {
	ReceiptRepo        *InMemoryReceiptStore
	JobApplicationRepo *InMemoryJobApplicationStore
	ContactRepo        *InMemoryContactStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	s3     *InMemoryS3
	db     *MockPostgresClient
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()
	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.config = NewTestConfig()
	s.ctx = SetupContext()
	s.setupStores()
	s.s3 = NewInMemoryS3()
	s.db = NewMockPostgresClient(s.logger)
	s.db.Track(s.stores.ReceiptRepo, s.stores.JobApplicationRepo, s.stores.ContactRepo)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		ReceiptRepo:        NewInMemoryReceiptStore(),
		JobApplicationRepo: NewInMemoryJobApplicationStore(),
		ContactRepo:        NewInMemoryContactStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.ReceiptRepo.Clear()
	s.stores.JobApplicationRepo.Clear()
	s.stores.ContactRepo.Clear()
	s.s3.Clear()
}

// NewTestConfig returns a valid configuration for unit tests
func NewTestConfig() *config.Configuration {
	return &config.Configuration{
		Deployment: config.DeploymentConfig{Mode: types.ModeLocal},
		Server:     config.ServerConfig{Address: ":0"},
		Logging:    config.LoggingConfig{Level: types.LogLevelInfo},
		Auth: config.AuthConfig{
			Secret:         TestAuthSecret,
			Issuer:         "skyup-api-test",
			TokenTTL:       time.Hour,
			AdminEmail:     TestAdminEmail,
			AdminPassword:  TestAdminPassword,
			AdminSubjectID: TestAdminSubjectID,
			LoginRateLimit: config.LoginRateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 5,
				Burst:             2,
			},
		},
		Invoice: config.InvoiceConfig{
			Prefix:   "SDS",
			Timezone: "Asia/Kolkata",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://skyup.test"},
		},
		Storage: config.StorageConfig{
			MaxUploadBytes: 10 << 20,
		},
	}
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetS3 returns the in-memory document store
func (s *BaseServiceTestSuite) GetS3() *InMemoryS3 {
	return s.s3
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
