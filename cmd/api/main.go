package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime"

	"catalogadmin/internal/auth"
	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain/products"
	"catalogadmin/internal/images"
	"catalogadmin/internal/ratelimiter"
	"catalogadmin/internal/session"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	// Configure the encoder to be a console encoder with color
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

var version = "1.0.0"

//	@title			Catalog Admin API
//	@description	Backend for the product catalog administration UI.

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	// a missing .env is fine when the environment is provided by the host
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		logger.Fatalw("invalid configuration", "error", err)
	}

	// remote catalog
	client := catalogapi.NewHTTPClient(catalogapi.Config{
		BaseURL: cfg.catalog.baseURL,
		Token:   cfg.catalog.token,
		Timeout: cfg.catalog.timeout,
	})

	catalog := products.NewStore(client, logger)
	if err := catalog.Load(context.Background()); err != nil {
		// the UI shows a full-screen error with a retry; refetch recovers
		logger.Errorw("initial catalog load failed", "error", err)
	}

	//cloudinary thumbnails are optional
	var thumbnails images.Thumbnailer = images.Passthrough{}
	if cfg.cloudinary != "" {
		cld, err := cloudinary.NewFromURL(cfg.cloudinary)
		if err != nil {
			logger.Fatal(err)
		}
		thumbnails = images.NewCloudinaryThumbnailer(cld, 320, 320)
	}

	// Rate limiter
	var limiter ratelimiter.Limiter = ratelimiter.Noop{}
	if cfg.rateLimiter.enabled {
		limiter = ratelimiter.NewFixedWindowLimiter(
			cfg.rateLimiter.requestsPerTimeFrame,
			cfg.rateLimiter.timeFrame,
		)
	}

	// Authenticator
	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	sessions := session.NewRegistry(session.Config{
		Catalog:     catalog,
		Uploader:    client,
		Logger:      logger,
		PageSize:    cfg.pageSize,
		IdleTimeout: cfg.auth.token.exp,
	})

	app := &application{
		config:        cfg,
		logger:        logger,
		client:        client,
		catalog:       catalog,
		images:        catalogapi.NewImageResolver(cfg.catalog.imageBase),
		thumbnails:    thumbnails,
		sessions:      sessions,
		operator:      auth.NewOperator(cfg.auth.user, cfg.auth.passHash),
		authenticator: jwtAuthenticator,
		rateLimiter:   limiter,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("catalog", expvar.Func(func() any {
		snap := catalog.Snapshot()
		return map[string]any{"state": snap.State, "products": len(snap.Products)}
	}))
	expvar.Publish("sessions", expvar.Func(func() any {
		return sessions.Len()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
