// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"uplio_backend/internal/app"
	"uplio_backend/internal/auth"
	"uplio_backend/internal/config"
	"uplio_backend/internal/platform/database"
	"uplio_backend/internal/platform/logger"
	"uplio_backend/internal/profile"
	"uplio_backend/internal/upload"
	"uplio_backend/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,

		// Token Service
		auth.NewJWTService, // Provides shared.TokenService

		// User Module
		user.NewGORMRepository, // Provides user.Repository
		user.NewService,
		user.NewHandler,

		// Profile Module
		profile.NewGORMRepository,
		profile.NewService,
		profile.NewHandler,

		// Upload Module
		provideFileStorage,
		upload.NewHandler,

		// Application Layer
		app.NewServer,
		provideCleanup,
	)
	return nil, nil, nil
}

func provideFileStorage(cfg *config.Config, appLogger *zap.Logger) (*upload.FileStorageService, error) {
	return upload.NewFileStorageService(cfg.UploadStoragePath, appLogger)
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
