// Package bootstrap wires runtime dependencies for the portal's commands.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"feedbackhub/internal/cache"
	"feedbackhub/internal/config"
	"feedbackhub/internal/database"
	"feedbackhub/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	EnsureDevAdmin bool
}

// InitRuntime connects to DB and Redis and optionally bootstraps a development
// admin account.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May result in a nil client if unreachable; the cache degrades gracefully.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.EnsureDevAdmin {
		if err := ensureDevAdmin(cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
		}
	}

	return db, r, nil
}

// ensureDevAdmin creates an account for the first configured admin email so
// status updates can be exercised locally without manual signup. Development only.
func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") {
		return nil
	}

	admins := cfg.AdminEmailList()
	if len(admins) == 0 {
		return nil
	}
	email := admins[0]

	var existing models.User
	findErr := db.Where("email = ?", email).First(&existing).Error
	switch {
	case findErr == nil:
		return nil
	case !errors.Is(findErr, gorm.ErrRecordNotFound):
		return findErr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("DevAdminPass12!"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:      "portal_admin",
		Email:         email,
		Password:      string(hashedPassword),
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("development admin bootstrap ensured for %s", email)
	return nil
}
