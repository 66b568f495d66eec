package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/mhasan/dancecamp/internal/app/models"
	appRepos "github.com/mhasan/dancecamp/internal/app/repositories"
	"github.com/rs/zerolog"
)

// CreateDefaultData creates the default admin account if it doesn't exist.
// Role promotion is admin-only, so at least one admin has to come from seed.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	admin := &appModels.User{
		Email: "admin@dancecamp.app",
		Name:  "DanceCamp Admin",
		Role:  appModels.RoleAdmin,
	}

	created, err := userRepo.CreateIfAbsent(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	if created {
		lgr.Info().Str("email", admin.Email).Msg("Default admin account created")
	}
	return nil
}
