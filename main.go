package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	api "github.com/rpupo63/devprojects-api/api"
	"github.com/rpupo63/devprojects-api/config"
	"github.com/rpupo63/devprojects-api/database"
	"github.com/rpupo63/devprojects-api/models"
)

func main() {
	c, err := config.Load()
	setupLogger(c)
	if err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, using the process environment")
	}

	log.Info().Msg("Initializing app...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settings := config.NewDatabaseSettings(c)
	if err := settings.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid database settings")
	}
	if settings.PasswordParam != "" {
		store, err := config.NewParameterStore(ctx, config.GetString(c, "AWS_REGION", ""))
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating Parameter Store client")
		}
		if err := settings.ResolvePassword(ctx, store); err != nil {
			log.Fatal().Err(err).Str("param", settings.PasswordParam).Msg("Error reading database password")
		}
	}

	log.Info().Str("dsn", settings.Redacted()).Msg("Connecting to database...")
	db, err := database.Open(database.Config{
		DSN:           settings.DSN(),
		ReplicaDSNs:   settings.ReplicaURLs,
		MaxOpenConns:  settings.MaxOpenConns,
		MaxIdleConns:  settings.MaxIdleConns,
		SlowThreshold: settings.SlowQueryThresh,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	currentDB := database.New(db)
	defer func() {
		if err := currentDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = currentDB.Ping(pingCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db, config.GetString(c, "GENERATE_MODELS_OUT", "./query")); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		drift, err := models.ColumnDrift(db)
		if err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		if models.WriteColumnReport(os.Stdout, drift) > 0 {
			log.Warn().Msg("Database has columns no model maps")
		}
		return
	}

	server := api.NewServer(currentDB, c)
	shutdownTimeout := config.GetSeconds(c, "SHUTDOWN_TIMEOUT_SECONDS", 30)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		// Listen for interrupt signals, or a failed listener, to shut down
		<-gctx.Done()
		server.ShutdownGracefully(shutdownTimeout)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Closing server")
		return
	}
	log.Info().Msg("Server stopped")
}

// setupLogger configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogger(c map[string]string) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "console") == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
