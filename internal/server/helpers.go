package server

import (
	"context"
	"strings"
	"time"

	"feedbackhub/internal/middleware"
	"feedbackhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// currentSession resolves the caller's session from the Authorization header.
// The bearer token is a signed JWT whose "sid" claim references a session row;
// the row is authoritative, so a deleted or expired session invalidates the
// token regardless of its own expiry. Returns (nil, false) for any failure so
// handlers can answer with their own action-scoped error.
func (s *Server) currentSession(c *fiber.Ctx) (*models.Session, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return nil, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return nil, false
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil, false
	}

	session, err := s.sessionRepo.GetByID(c.Context(), sid)
	if err != nil || session == nil {
		return nil, false
	}

	if session.Expired(time.Now()) {
		// Lazy cleanup; the row is already useless.
		_ = s.sessionRepo.Delete(c.Context(), session.ID)
		return nil, false
	}

	// Expose the caller for logging and downstream handlers.
	c.Locals("userID", session.UserID)
	ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, session.UserID)
	c.SetUserContext(ctx)

	return session, true
}

// isAdmin reports whether the session's user is on the configured admin allow-list.
func (s *Server) isAdmin(session *models.Session) bool {
	return s.config.IsAdminEmail(session.User.Email)
}
