package server

import (
	"context"
	"testing"
	"time"

	"feedbackhub/internal/config"
	"feedbackhub/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockSessionRepository is a mock of the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

// MockBugReportRepository is a mock of the BugReportRepository interface
type MockBugReportRepository struct {
	mock.Mock
}

func (m *MockBugReportRepository) Create(ctx context.Context, report *models.BugReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockBugReportRepository) ListWithAuthors(ctx context.Context) ([]*models.BugReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BugReport), args.Error(1)
}

func (m *MockBugReportRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockFeatureRequestRepository is a mock of the FeatureRequestRepository interface
type MockFeatureRequestRepository struct {
	mock.Mock
}

func (m *MockFeatureRequestRepository) Create(ctx context.Context, request *models.FeatureRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockFeatureRequestRepository) ListWithAuthors(ctx context.Context) ([]*models.FeatureRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FeatureRequest), args.Error(1)
}

func (m *MockFeatureRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockFeatureRequestRepository) HasUpvoted(ctx context.Context, userID, featureRequestID uint) (bool, error) {
	args := m.Called(ctx, userID, featureRequestID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeatureRequestRepository) Upvote(ctx context.Context, userID, featureRequestID uint) error {
	args := m.Called(ctx, userID, featureRequestID)
	return args.Error(0)
}

// newTestServer builds a Server wired to fresh mocks with a test configuration.
func newTestServer() (*Server, *MockUserRepository, *MockSessionRepository, *MockBugReportRepository, *MockFeatureRequestRepository) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	bugRepo := new(MockBugReportRepository)
	featureRepo := new(MockFeatureRequestRepository)

	s := &Server{
		config: &config.Config{
			JWTSecret:      "unit-test-secret-0123456789abcdef",
			AdminEmails:    "admin@example.com",
			SessionTTLDays: 30,
			Env:            "test",
			Port:           "8480",
		},
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		bugRepo:     bugRepo,
		featureRepo: featureRepo,
	}
	return s, userRepo, sessionRepo, bugRepo, featureRepo
}

// bearerFor mints a valid token for the given session and primes the session
// repository mock to resolve it.
func bearerFor(t *testing.T, s *Server, sessionRepo *MockSessionRepository, user models.User) string {
	t.Helper()

	session := &models.Session{
		ID:        "sess-" + user.Email,
		UserID:    user.ID,
		User:      user,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)

	token, err := s.generateToken(user.ID, session.ID, session.ExpiresAt)
	require.NoError(t, err)
	return "Bearer " + token
}
