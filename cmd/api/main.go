package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"consultacnpj/cmd/internal/domain/sqlite"
	"consultacnpj/cmd/internal/domain/sqlite/repository"
	handler2 "consultacnpj/cmd/internal/http/handler"
	middleware2 "consultacnpj/cmd/internal/http/middleware"
	"consultacnpj/cmd/internal/infrastructure/aws/storage"
	"consultacnpj/cmd/internal/infrastructure/cnpja"
	"consultacnpj/cmd/internal/service"
	"consultacnpj/cmd/internal/service/jobs"
	"consultacnpj/cmd/internal/session"
	"consultacnpj/cmd/internal/tracing"
	"consultacnpj/cmd/internal/utils/uid"
	"consultacnpj/cmd/internal/utils/validators"
	"consultacnpj/cmd/internal/web"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

const envVarsPrefix = "/consultacnpj/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	uid.Init(envInt64("NODE_ID", 1))

	ctx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	traceProvider, err := tracing.NewProvider(ctx, tracing.Config{
		Enabled:     os.Getenv("TRACE_ENABLED") == "true",
		Endpoint:    os.Getenv("TRACE_ENDPOINT"),
		ServiceName: "consultacnpj",
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = traceProvider.Shutdown(context.Background()) }()

	// Init SQLite
	db, err := sqlite.Init(os.Getenv("DB_PATH"))
	if err != nil {
		panic(err)
	}

	// Registry client
	registry := cnpja.NewClient(registryOptions()...)

	// Export archive is optional; without a bucket, downloads still work.
	var archive service.Archiver
	if bucket := os.Getenv("EXPORT_BUCKET"); bucket != "" {
		s3Client, serr := storage.NewStorageClient(bucket)
		if serr != nil {
			panic(serr)
		}
		archive = s3Client
	}

	// Page theme
	theme, err := web.LoadTheme(os.Getenv("APP_THEME"), os.Getenv("THEMES_FILE"))
	if err != nil {
		panic(err)
	}
	page, err := web.NewPage(theme)
	if err != nil {
		panic(err)
	}

	// Gettings repos
	lookupRepo := repository.NewLookupRepository(db)
	sessions := session.NewStore(envDuration("SESSION_TTL", session.DefaultTTL))

	// Getting services
	lookupService := service.NewLookupService(registry, sessions, lookupRepo, validate)
	exportService := service.NewExportService(sessions, archive)

	// Gettings handler
	lookupRoutes := handler2.NewLookupRoute(lookupService)
	exportRoutes := handler2.NewExportRoute(exportService)
	pageRoutes := handler2.NewPageRoute(page)

	// History retention sweeper
	retention := time.Duration(envInt64("HISTORY_RETENTION_DAYS", 90)) * 24 * time.Hour
	pruner := jobs.NewHistoryPruner(lookupRepo, retention)
	go pruner.Start(ctx)

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))
	if traceProvider.Enabled() {
		e.Use(otelecho.Middleware("consultacnpj"))
	}
	e.Use(middleware2.NewSessionMiddleware())

	// Page
	e.GET("/", pageRoutes.GetPage)

	// Lookups
	e.POST("/api/lookups", lookupRoutes.CreateLookup)
	e.GET("/api/lookups/current", lookupRoutes.GetCurrent)
	e.GET("/api/history", lookupRoutes.GetHistory)

	// Exports
	e.GET("/api/exports/spreadsheet", exportRoutes.GetSpreadsheet)
	e.GET("/api/exports/card", exportRoutes.GetCard)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := e.Start(":" + port); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("cnpj", validators.CNPJ)
}

func registryOptions() []cnpja.Option {
	var opts []cnpja.Option
	if base := os.Getenv("REGISTRY_BASE_URL"); base != "" {
		opts = append(opts, cnpja.WithBaseURL(base))
	}
	if wait := envDuration("REGISTRY_RETRY_WAIT", 0); wait > 0 {
		opts = append(opts, cnpja.WithRetryWait(wait))
	}
	if raw := os.Getenv("REGISTRY_MAX_RETRIES"); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("invalid REGISTRY_MAX_RETRIES: %v", err)
		}
		opts = append(opts, cnpja.WithMaxRetries(retries))
	}
	return opts
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return value
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
