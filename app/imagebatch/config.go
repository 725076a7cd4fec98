package imagebatch

import (
	"github.com/dmitrymomot/imagebatch/core/server"
	"github.com/dmitrymomot/imagebatch/integration/database/redis"
	"github.com/dmitrymomot/imagebatch/integration/storage/s3"
	"github.com/dmitrymomot/imagebatch/pkg/batch"
	"github.com/dmitrymomot/imagebatch/pkg/imaging"
	"github.com/dmitrymomot/imagebatch/pkg/sessionstore"
)

// Storage drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

type Config struct {
	Server  server.Config
	Redis   redis.Config
	S3      s3.Config
	Imaging imaging.Config

	AppName  string `env:"APP_NAME" envDefault:"imagebatch"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorageDriver    string   `env:"STORAGE_DRIVER" envDefault:"local"`
	OutputDir        string   `env:"OUTPUT_DIR" envDefault:"./static/optimized"`
	PublicPath       string   `env:"PUBLIC_PATH" envDefault:"/optimized"`
	MaxFileSize      int64    `env:"MAX_FILE_SIZE" envDefault:"15728640"`
	MaxRequestSize   int64    `env:"MAX_REQUEST_SIZE" envDefault:"268435456"`
	BatchConcurrency int      `env:"BATCH_CONCURRENCY" envDefault:"4"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
	TrustProxy       bool     `env:"TRUST_PROXY" envDefault:"false"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		Server:           server.DefaultConfig(),
		Imaging:          imaging.DefaultConfig(),
		AppName:          "imagebatch",
		Env:              "development",
		LogLevel:         "info",
		StorageDriver:    DriverLocal,
		OutputDir:        "./static/optimized",
		PublicPath:       sessionstore.DefaultPublicPath,
		MaxFileSize:      batch.DefaultMaxFileSize,
		MaxRequestSize:   256 << 20,
		BatchConcurrency: batch.DefaultConcurrency,
		CORSAllowOrigins: []string{"*"},
	}
}
