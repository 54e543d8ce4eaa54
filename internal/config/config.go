package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the runtime configuration, populated from the environment
// with optional overrides from a .env file.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	// DataDir holds the flat JSON documents (registry, collections,
	// settings).
	DataDir string `envconfig:"DATA_DIR" default:"data"`
	// ImagesDir is the blob directory processed images are written to and
	// served from.
	ImagesDir string `envconfig:"IMAGES_DIR" default:"public/images"`
	// PublicImagePrefix is the URL prefix the blob directory is served
	// under as static content.
	PublicImagePrefix string `envconfig:"PUBLIC_IMAGE_PREFIX" default:"/images"`

	// MaxUploadSize caps the raw upload size in bytes, default 10MB.
	MaxUploadSize int64 `envconfig:"MAX_UPLOAD_SIZE" default:"10485760"`

	CORSAllowOrigin string `envconfig:"CORS_ALLOW_ORIGIN" default:"*"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// LogFile, when set, sends logs to a size-rotated file instead of
	// stderr.
	LogFile       string `envconfig:"LOG_FILE" default:""`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// Load reads configuration from the given env file (if present) and the
// process environment.
func Load(envPath string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil {
		log.Info().Err(err).Str("path", envPath).Msg("No env file loaded")
	}

	cfg := &Config{}
	if err := envconfig.Process("dojosite", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
