package imagebatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/imagebatch/core/config"
	"github.com/dmitrymomot/imagebatch/core/logger"
	"github.com/dmitrymomot/imagebatch/core/response"
	"github.com/dmitrymomot/imagebatch/core/router"
	"github.com/dmitrymomot/imagebatch/core/server"
	"github.com/dmitrymomot/imagebatch/core/storage"
	"github.com/dmitrymomot/imagebatch/integration/database/redis"
	"github.com/dmitrymomot/imagebatch/integration/storage/s3"
	"github.com/dmitrymomot/imagebatch/pkg/archive"
	"github.com/dmitrymomot/imagebatch/pkg/batch"
	"github.com/dmitrymomot/imagebatch/pkg/imaging"
	"github.com/dmitrymomot/imagebatch/pkg/naming"
	"github.com/dmitrymomot/imagebatch/pkg/sessionstore"
)

type App struct {
	config      Config
	hasConfig   bool
	router      router.Router[*Context]
	server      *server.Server
	storage     storage.Storage
	redis       *goredis.Client
	counter     naming.Counter
	transformer batch.Transformer
	store       *sessionstore.Store
	processor   *batch.Processor
	builder     *archive.Builder
	logger      *slog.Logger
}

type AppOption func(*App) error

// NewApp wires the application. Without WithConfig the configuration is
// loaded from the environment.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.hasConfig {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}
	cfg := app.config

	if app.logger == nil {
		app.logger = logger.New(
			logger.WithEnvironment(cfg.Env, cfg.AppName),
			logger.WithLevelString(cfg.LogLevel),
		)
	}

	if app.storage == nil {
		st, err := newStorage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.storage = st
	}

	if app.counter == nil {
		counter, err := app.newCounter(ctx)
		if err != nil {
			return nil, err
		}
		app.counter = counter
	}

	if app.transformer == nil {
		app.transformer = imaging.NewTransformer(cfg.Imaging)
	}

	app.store = sessionstore.New(app.storage,
		sessionstore.WithPublicPath(cfg.PublicPath),
		sessionstore.WithLogger(app.logger.With(logger.Component("sessionstore"))),
	)
	app.processor = batch.New(app.store, app.transformer, app.counter,
		batch.WithLogger(app.logger.With(logger.Component("batch"))),
		batch.WithMaxFileSize(cfg.MaxFileSize),
		batch.WithConcurrency(cfg.BatchConcurrency),
	)
	app.builder = archive.New(app.store,
		archive.WithLogger(app.logger.With(logger.Component("archive"))),
	)

	if app.router == nil {
		app.router = router.New[*Context](
			router.WithContextFactory[*Context](newContext),
			router.WithErrorHandler[*Context](response.JSONErrorHandler[*Context]),
			router.WithLogger[*Context](app.logger),
		)
	}
	app.routes(app.router)

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

func newStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case DriverLocal, "":
		return storage.NewLocal(cfg.OutputDir)
	case DriverS3:
		return s3.New(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", storage.ErrInvalidConfig, cfg.StorageDriver)
	}
}

// newCounter shares the rename sequence through redis when configured.
func (a *App) newCounter(ctx context.Context) (naming.Counter, error) {
	if !a.config.Redis.Enabled() {
		return &naming.AtomicCounter{}, nil
	}
	client, err := redis.Connect(ctx, a.config.Redis)
	if err != nil {
		return nil, err
	}
	a.redis = client
	return naming.NewRedisCounter(client, ""), nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.router }

// Store exposes the session store for offline tooling.
func (a *App) Store() *sessionstore.Store { return a.store }

// Builder exposes the archive builder for offline tooling.
func (a *App) Builder() *archive.Builder { return a.builder }

func (a *App) Logger() *slog.Logger { return a.logger }

// Run serves HTTP until ctx is cancelled. Suitable for errgroup.Go.
func (a *App) Run(ctx context.Context) func() error {
	return a.server.Run(ctx, a.router)
}

// Close releases external connections.
func (a *App) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.hasConfig = true
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithRouter(router router.Router[*Context]) AppOption {
	return func(app *App) error {
		if router == nil {
			return errors.New("router cannot be nil")
		}
		app.router = router
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

func WithStorage(st storage.Storage) AppOption {
	return func(app *App) error {
		if st == nil {
			return errors.New("storage cannot be nil")
		}
		app.storage = st
		return nil
	}
}

// WithCounter overrides the rename counter chosen from the redis config.
func WithCounter(c naming.Counter) AppOption {
	return func(app *App) error {
		if c == nil {
			return errors.New("counter cannot be nil")
		}
		app.counter = c
		return nil
	}
}

func WithTransformer(t batch.Transformer) AppOption {
	return func(app *App) error {
		if t == nil {
			return errors.New("transformer cannot be nil")
		}
		app.transformer = t
		return nil
	}
}
