// Package seed creates the default data a fresh deployment needs: the
// initial admin account used to bootstrap provisioning.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/repositories"
	"github.com/placenet/portal/internal/config"
	"github.com/placenet/portal/internal/pkg/apperrors"
	"github.com/placenet/portal/internal/pkg/auth"
)

// CreateDefaultData ensures the default admin account exists. Credentials
// come from the environment so deployments never ship a fixed password.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	adminID := config.GetEnv("ADMIN_USER_ID", "admin")
	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@placenet.app")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")

	if _, err := userRepo.GetByUserID(ctx, adminID); err == nil {
		lgr.Debug().Str("userID", adminID).Msg("Default admin already exists")
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	if adminPassword == "" {
		tmp, err := auth.GenerateTempPassword(16)
		if err != nil {
			return err
		}
		adminPassword = tmp
		lgr.Warn().
			Str("userID", adminID).
			Str("password", adminPassword).
			Msg("ADMIN_PASSWORD not set, generated a random one. Change it after first login")
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		UserID:       adminID,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Name:         "Portal Administrator",
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) || errors.Is(err, apperrors.ErrUserIDExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("userID", adminID).Str("email", adminEmail).Msg("Default admin account created")
	return nil
}
