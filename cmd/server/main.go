package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dojoworks/dojosite/cms/application"
	"github.com/dojoworks/dojosite/cms/domain"
	"github.com/dojoworks/dojosite/cms/persistence"
	"github.com/dojoworks/dojosite/internal/config"
	"github.com/dojoworks/dojosite/internal/middleware"
	"github.com/dojoworks/dojosite/internal/rest"
)

func main() {
	envPath := flag.String("env", ".env", "path to env file")
	flag.Parse()

	cfg, err := config.Load(*envPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg)

	registry, err := persistence.NewRegistry(filepath.Join(cfg.DataDir, "images.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open image registry")
	}
	blobs, err := persistence.NewBlobDir(cfg.ImagesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open image directory")
	}
	programs, err := persistence.NewCollection[*domain.Program](filepath.Join(cfg.DataDir, "programs.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open programs collection")
	}
	instructors, err := persistence.NewCollection[*domain.Instructor](filepath.Join(cfg.DataDir, "instructors.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open instructors collection")
	}
	testimonials, err := persistence.NewCollection[*domain.Testimonial](filepath.Join(cfg.DataDir, "testimonials.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open testimonials collection")
	}
	settings, err := persistence.NewDocument(filepath.Join(cfg.DataDir, "settings.json"), domain.DefaultSettings)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open settings document")
	}
	cmsSettings, err := persistence.NewDocument(filepath.Join(cfg.DataDir, "cms-settings.json"), domain.DefaultCMSSettings)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cms settings document")
	}

	images := application.NewImageService(registry, blobs, cfg.PublicImagePrefix)

	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(middleware.AllowOrigin(cfg.CORSAllowOrigin))
	router.Static(cfg.PublicImagePrefix, blobs.Dir())

	api := rest.NewAPI(images, programs, instructors, testimonials, settings, cmsSettings, cfg.MaxUploadSize)
	api.Register(router)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFile != "" {
		log.Logger = log.Output(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		})
	}
}
