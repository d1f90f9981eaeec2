package server

import (
	"feedbackhub/internal/models"
	"feedbackhub/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Action names used to tag mutation results, mirrored in the response envelope.
const (
	actionCreateBugReport      = "createBugReport"
	actionCreateFeatureRequest = "createFeatureRequest"
	actionUpvoteFeatureRequest = "upvoteFeatureRequest"
	actionUpdateBugStatus      = "updateBugStatus"
	actionUpdateFeatureStatus  = "updateFeatureStatus"
)

// GetFeedbackBoard handles GET /api/feedback.
// Returns both feedback lists, the caller (null when anonymous), and the admin
// allow-list so clients can render admin controls.
func (s *Server) GetFeedbackBoard(c *fiber.Ctx) error {
	ctx := c.Context()

	bugReports, err := s.bugRepo.ListWithAuthors(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	featureRequests, err := s.featureRepo.ListWithAuthors(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var user *models.User
	if session, ok := s.currentSession(c); ok {
		user = &session.User
	}

	return c.JSON(fiber.Map{
		"user":             user,
		"bug_reports":      bugReports,
		"feature_requests": featureRequests,
		"admin_emails":     s.config.AdminEmailList(),
	})
}

// CreateBugReport handles POST /api/feedback/bugs
func (s *Server) CreateBugReport(c *fiber.Ctx) error {
	session, ok := s.currentSession(c)
	if !ok {
		return models.ActionFailure(c, fiber.StatusUnauthorized, actionCreateBugReport,
			models.NewUnauthorizedError("Unauthorized"))
	}

	var req struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.ActionFailure(c, fiber.StatusBadRequest, actionCreateBugReport,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Description == "" {
		return models.ActionFailure(c, fiber.StatusBadRequest, actionCreateBugReport,
			models.NewValidationError("Title and description are required"))
	}

	report := &models.BugReport{
		Title:       req.Title,
		Description: req.Description,
		UserID:      session.UserID,
	}
	if err := s.bugRepo.Create(c.Context(), report); err != nil {
		return models.ActionFailure(c, fiber.StatusInternalServerError, actionCreateBugReport,
			models.NewInternalError(err))
	}

	observability.FeedbackSubmissions.WithLabelValues("bug_report").Inc()
	return models.ActionSuccess(c, actionCreateBugReport)
}

// CreateFeatureRequest handles POST /api/feedback/features
func (s *Server) CreateFeatureRequest(c *fiber.Ctx) error {
	session, ok := s.currentSession(c)
	if !ok {
		return models.ActionFailure(c, fiber.StatusUnauthorized, actionCreateFeatureRequest,
			models.NewUnauthorizedError("Unauthorized"))
	}

	var req struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.ActionFailure(c, fiber.StatusBadRequest, actionCreateFeatureRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Description == "" {
		return models.ActionFailure(c, fiber.StatusBadRequest, actionCreateFeatureRequest,
			models.NewValidationError("Title and description are required"))
	}

	request := &models.FeatureRequest{
		Title:       req.Title,
		Description: req.Description,
		UserID:      session.UserID,
	}
	if err := s.featureRepo.Create(c.Context(), request); err != nil {
		return models.ActionFailure(c, fiber.StatusInternalServerError, actionCreateFeatureRequest,
			models.NewInternalError(err))
	}

	observability.FeedbackSubmissions.WithLabelValues("feature_request").Inc()
	return models.ActionSuccess(c, actionCreateFeatureRequest)
}

// UpvoteFeatureRequest handles POST /api/feedback/features/upvote
func (s *Server) UpvoteFeatureRequest(c *fiber.Ctx) error {
	session, ok := s.currentSession(c)
	if !ok {
		return models.ActionFailure(c, fiber.StatusUnauthorized, actionUpvoteFeatureRequest,
			models.NewUnauthorizedError("Unauthorized"))
	}

	var req struct {
		ID uint `json:"id" form:"id"`
	}
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return models.ActionFailure(c, fiber.StatusBadRequest, actionUpvoteFeatureRequest,
			models.NewValidationError("Invalid feature request ID"))
	}

	upvoted, err := s.featureRepo.HasUpvoted(c.Context(), session.UserID, req.ID)
	if err != nil {
		return models.ActionFailure(c, fiber.StatusInternalServerError, actionUpvoteFeatureRequest,
			models.NewInternalError(err))
	}
	if upvoted {
		observability.FeedbackUpvotes.WithLabelValues("duplicate").Inc()
		return models.ActionFailure(c, fiber.StatusBadRequest, actionUpvoteFeatureRequest,
			models.NewConflictError("Already upvoted"))
	}

	if err := s.featureRepo.Upvote(c.Context(), session.UserID, req.ID); err != nil {
		return models.ActionFailure(c, fiber.StatusInternalServerError, actionUpvoteFeatureRequest,
			models.NewInternalError(err))
	}

	observability.FeedbackUpvotes.WithLabelValues("recorded").Inc()
	return models.ActionSuccess(c, actionUpvoteFeatureRequest)
}

// UpdateBugStatus handles POST /api/feedback/bugs/status.
// Anonymous callers and non-admins both get 403, matching the portal's
// authorization-first validation order.
func (s *Server) UpdateBugStatus(c *fiber.Ctx) error {
	session, ok := s.currentSession(c)
	if !ok || !s.isAdmin(session) {
		return models.ActionFailure(c, fiber.StatusForbidden, actionUpdateBugStatus,
			models.NewForbiddenError("Forbidden"))
	}

	var req struct {
		ID     uint   `json:"id" form:"id"`
		Status string `json:"status" form:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return models.ActionFailure(c, fiber.StatusBadRequest, actionUpdateBugStatus,
			models.NewValidationError("Invalid bug report ID"))
	}

	if !models.ValidBugStatus(req.Status) {
		return models.ActionFailure(c, fiber.StatusBadRequest, actionUpdateBugStatus,
			models.NewValidationError("Invalid status"))
	}

	// No existence check: updating a missing id affects zero rows and still succeeds.
	if err := s.bugRepo.UpdateStatus(c.Context(), req.ID, req.Status); err != nil {
		return models.ActionFailure(c, fiber.StatusInternalServerError, actionUpdateBugStatus,
			models.NewInternalError(err))
	}

	observability.StatusUpdates.WithLabelValues("bug_report").Inc()
	return models.ActionSuccess(c, actionUpdateBugStatus)
}

// UpdateFeatureStatus handles POST /api/feedback/features/status
func (s *Server) UpdateFeatureStatus(c *fiber.Ctx) error {
	session, ok := s.currentSession(c)
	if !ok || !s.isAdmin(session) {
		return models.ActionFailure(c, fiber.StatusForbidden, actionUpdateFeatureStatus,
			models.NewForbiddenError("Forbidden"))
	}

	var req struct {
		ID     uint   `json:"id" form:"id"`
		Status string `json:"status" form:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return models.ActionFailure(c, fiber.StatusBadRequest, actionUpdateFeatureStatus,
			models.NewValidationError("Invalid feature request ID"))
	}

	if !models.ValidFeatureStatus(req.Status) {
		return models.ActionFailure(c, fiber.StatusBadRequest, actionUpdateFeatureStatus,
			models.NewValidationError("Invalid status"))
	}

	if err := s.featureRepo.UpdateStatus(c.Context(), req.ID, req.Status); err != nil {
		return models.ActionFailure(c, fiber.StatusInternalServerError, actionUpdateFeatureStatus,
			models.NewInternalError(err))
	}

	observability.StatusUpdates.WithLabelValues("feature_request").Inc()
	return models.ActionSuccess(c, actionUpdateFeatureStatus)
}
