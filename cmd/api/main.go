package main

import (
	"os"

	"github.com/mhasan/dancecamp/internal/pkg/logger"
	"github.com/mhasan/dancecamp/internal/server"
)

// @title DanceCamp API
// @version 1.0
// @description API for the DanceCamp dance school enrollment platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@dancecamp.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
