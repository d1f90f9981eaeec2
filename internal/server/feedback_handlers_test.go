package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"feedbackhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(t *testing.T, method, target string, body any, bearer string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	return req
}

// decodeEnvelope unpacks the action-tagged response body.
func decodeEnvelope(t *testing.T, resp *http.Response) map[string]map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var envelope map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestGetFeedbackBoard(t *testing.T) {
	s, _, _, bugRepo, featureRepo := newTestServer()
	app := fiber.New()
	app.Get("/feedback", s.GetFeedbackBoard)

	bugRepo.On("ListWithAuthors", mock.Anything).Return([]*models.BugReport{
		{ID: 1, Title: "Broken export", Status: models.BugStatusInvestigating, AuthorUsername: "alice"},
	}, nil)
	featureRepo.On("ListWithAuthors", mock.Anything).Return([]*models.FeatureRequest{
		{ID: 7, Title: "Dark mode", Status: models.FeatureStatusPlanned, AuthorUsername: "bob", Upvotes: 3},
	}, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/feedback", nil, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		User            *models.User             `json:"user"`
		BugReports      []*models.BugReport      `json:"bug_reports"`
		FeatureRequests []*models.FeatureRequest `json:"feature_requests"`
		AdminEmails     []string                 `json:"admin_emails"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Nil(t, body.User)
	require.Len(t, body.BugReports, 1)
	assert.Equal(t, "alice", body.BugReports[0].AuthorUsername)
	require.Len(t, body.FeatureRequests, 1)
	assert.Equal(t, 3, body.FeatureRequests[0].Upvotes)
	assert.Equal(t, []string{"admin@example.com"}, body.AdminEmails)
}

func TestGetFeedbackBoard_Authenticated(t *testing.T) {
	s, _, sessionRepo, bugRepo, featureRepo := newTestServer()
	app := fiber.New()
	app.Get("/feedback", s.GetFeedbackBoard)

	bugRepo.On("ListWithAuthors", mock.Anything).Return([]*models.BugReport{}, nil)
	featureRepo.On("ListWithAuthors", mock.Anything).Return([]*models.FeatureRequest{}, nil)

	bearer := bearerFor(t, s, sessionRepo, models.User{ID: 4, Username: "carol", Email: "carol@example.com"})

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/feedback", nil, bearer))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		User *models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.User)
	assert.Equal(t, uint(4), body.User.ID)
	assert.Equal(t, "carol", body.User.Username)
}

func TestCreateBugReport(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		authenticated  bool
		mockSetup      func(*MockBugReportRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name:          "Success",
			body:          map[string]string{"title": "Export fails", "description": "CSV export returns 500"},
			authenticated: true,
			mockSetup: func(m *MockBugReportRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unauthenticated",
			body:           map[string]string{"title": "Export fails", "description": "CSV export returns 500"},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Unauthorized",
		},
		{
			name:           "Missing Title",
			body:           map[string]string{"description": "something"},
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Title and description are required",
		},
		{
			name:           "Missing Description",
			body:           map[string]string{"title": "something"},
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Title and description are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, sessionRepo, bugRepo, _ := newTestServer()
			app := fiber.New()
			app.Post("/feedback/bugs", s.CreateBugReport)

			if tt.mockSetup != nil {
				tt.mockSetup(bugRepo)
			}
			var bearer string
			if tt.authenticated {
				bearer = bearerFor(t, s, sessionRepo, models.User{ID: 1, Username: "alice", Email: "alice@example.com"})
			}

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/feedback/bugs", tt.body, bearer))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			envelope := decodeEnvelope(t, resp)
			require.Contains(t, envelope, "createBugReport")
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, envelope["createBugReport"]["error"])
			} else {
				assert.Equal(t, true, envelope["createBugReport"]["success"])
				bugRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(r *models.BugReport) bool {
					return r.Title == "Export fails" && r.UserID == 1
				}))
			}
		})
	}
}

func TestCreateBugReport_FormEncoded(t *testing.T) {
	s, _, sessionRepo, bugRepo, _ := newTestServer()
	app := fiber.New()
	app.Post("/feedback/bugs", s.CreateBugReport)

	bugRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	bearer := bearerFor(t, s, sessionRepo, models.User{ID: 2, Username: "bob", Email: "bob@example.com"})

	form := url.Values{}
	form.Set("title", "Login loop")
	form.Set("description", "Redirects forever after signin")

	req := httptest.NewRequest(http.MethodPost, "/feedback/bugs", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", bearer)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, true, envelope["createBugReport"]["success"])
}

func TestCreateFeatureRequest(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		authenticated  bool
		mockSetup      func(*MockFeatureRequestRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name:          "Success",
			body:          map[string]string{"title": "Dark mode", "description": "Please add a dark theme"},
			authenticated: true,
			mockSetup: func(m *MockFeatureRequestRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unauthenticated",
			body:           map[string]string{"title": "Dark mode", "description": "Please add a dark theme"},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Unauthorized",
		},
		{
			name:           "Empty Fields",
			body:           map[string]string{"title": "", "description": ""},
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Title and description are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, sessionRepo, _, featureRepo := newTestServer()
			app := fiber.New()
			app.Post("/feedback/features", s.CreateFeatureRequest)

			if tt.mockSetup != nil {
				tt.mockSetup(featureRepo)
			}
			var bearer string
			if tt.authenticated {
				bearer = bearerFor(t, s, sessionRepo, models.User{ID: 1, Username: "alice", Email: "alice@example.com"})
			}

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/feedback/features", tt.body, bearer))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			envelope := decodeEnvelope(t, resp)
			require.Contains(t, envelope, "createFeatureRequest")
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, envelope["createFeatureRequest"]["error"])
			} else {
				assert.Equal(t, true, envelope["createFeatureRequest"]["success"])
			}
		})
	}
}

func TestUpvoteFeatureRequest(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		authenticated  bool
		mockSetup      func(*MockFeatureRequestRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name:          "Success",
			body:          map[string]any{"id": 7},
			authenticated: true,
			mockSetup: func(m *MockFeatureRequestRepository) {
				m.On("HasUpvoted", mock.Anything, uint(1), uint(7)).Return(false, nil)
				m.On("Upvote", mock.Anything, uint(1), uint(7)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unauthenticated",
			body:           map[string]any{"id": 7},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Unauthorized",
		},
		{
			name:           "Missing ID",
			body:           map[string]any{},
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid feature request ID",
		},
		{
			name:          "Already Upvoted",
			body:          map[string]any{"id": 7},
			authenticated: true,
			mockSetup: func(m *MockFeatureRequestRepository) {
				m.On("HasUpvoted", mock.Anything, uint(1), uint(7)).Return(true, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Already upvoted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, sessionRepo, _, featureRepo := newTestServer()
			app := fiber.New()
			app.Post("/feedback/features/upvote", s.UpvoteFeatureRequest)

			if tt.mockSetup != nil {
				tt.mockSetup(featureRepo)
			}
			var bearer string
			if tt.authenticated {
				bearer = bearerFor(t, s, sessionRepo, models.User{ID: 1, Username: "alice", Email: "alice@example.com"})
			}

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/feedback/features/upvote", tt.body, bearer))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			envelope := decodeEnvelope(t, resp)
			require.Contains(t, envelope, "upvoteFeatureRequest")
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, envelope["upvoteFeatureRequest"]["error"])
			} else {
				assert.Equal(t, true, envelope["upvoteFeatureRequest"]["success"])
				featureRepo.AssertCalled(t, "Upvote", mock.Anything, uint(1), uint(7))
			}
		})
	}
}

func TestUpdateBugStatus(t *testing.T) {
	adminUser := models.User{ID: 9, Username: "admin", Email: "admin@example.com"}
	regularUser := models.User{ID: 3, Username: "dave", Email: "dave@example.com"}

	tests := []struct {
		name           string
		body           map[string]any
		user           *models.User
		mockSetup      func(*MockBugReportRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Admin Success",
			body: map[string]any{"id": 5, "status": models.BugStatusResolved},
			user: &adminUser,
			mockSetup: func(m *MockBugReportRepository) {
				m.On("UpdateStatus", mock.Anything, uint(5), models.BugStatusResolved).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Anonymous Forbidden",
			body:           map[string]any{"id": 5, "status": models.BugStatusResolved},
			expectedStatus: http.StatusForbidden,
			expectedError:  "Forbidden",
		},
		{
			name:           "Non-Admin Forbidden",
			body:           map[string]any{"id": 5, "status": models.BugStatusResolved},
			user:           &regularUser,
			expectedStatus: http.StatusForbidden,
			expectedError:  "Forbidden",
		},
		{
			name:           "Invalid Status",
			body:           map[string]any{"id": 5, "status": "Fixed"},
			user:           &adminUser,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid status",
		},
		{
			name:           "Missing ID",
			body:           map[string]any{"status": models.BugStatusResolved},
			user:           &adminUser,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid bug report ID",
		},
		{
			name: "Missing Row Still Succeeds",
			body: map[string]any{"id": 999, "status": models.BugStatusDeferred},
			user: &adminUser,
			mockSetup: func(m *MockBugReportRepository) {
				m.On("UpdateStatus", mock.Anything, uint(999), models.BugStatusDeferred).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, sessionRepo, bugRepo, _ := newTestServer()
			app := fiber.New()
			app.Post("/feedback/bugs/status", s.UpdateBugStatus)

			if tt.mockSetup != nil {
				tt.mockSetup(bugRepo)
			}
			var bearer string
			if tt.user != nil {
				bearer = bearerFor(t, s, sessionRepo, *tt.user)
			}

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/feedback/bugs/status", tt.body, bearer))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			envelope := decodeEnvelope(t, resp)
			require.Contains(t, envelope, "updateBugStatus")
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, envelope["updateBugStatus"]["error"])
			} else {
				assert.Equal(t, true, envelope["updateBugStatus"]["success"])
			}
		})
	}
}

func TestUpdateFeatureStatus(t *testing.T) {
	adminUser := models.User{ID: 9, Username: "admin", Email: "admin@example.com"}

	tests := []struct {
		name           string
		body           map[string]any
		user           *models.User
		mockSetup      func(*MockFeatureRequestRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Admin Success",
			body: map[string]any{"id": 7, "status": models.FeatureStatusReleased},
			user: &adminUser,
			mockSetup: func(m *MockFeatureRequestRepository) {
				m.On("UpdateStatus", mock.Anything, uint(7), models.FeatureStatusReleased).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Anonymous Forbidden",
			body:           map[string]any{"id": 7, "status": models.FeatureStatusReleased},
			expectedStatus: http.StatusForbidden,
			expectedError:  "Forbidden",
		},
		{
			name:           "Bug Status Rejected",
			body:           map[string]any{"id": 7, "status": models.BugStatusInvestigating},
			user:           &adminUser,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, sessionRepo, _, featureRepo := newTestServer()
			app := fiber.New()
			app.Post("/feedback/features/status", s.UpdateFeatureStatus)

			if tt.mockSetup != nil {
				tt.mockSetup(featureRepo)
			}
			var bearer string
			if tt.user != nil {
				bearer = bearerFor(t, s, sessionRepo, *tt.user)
			}

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/feedback/features/status", tt.body, bearer))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			envelope := decodeEnvelope(t, resp)
			require.Contains(t, envelope, "updateFeatureStatus")
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, envelope["updateFeatureStatus"]["error"])
			} else {
				assert.Equal(t, true, envelope["updateFeatureStatus"]["success"])
			}
		})
	}
}
