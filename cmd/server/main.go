package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quantashield/console/internal/api"
	"github.com/quantashield/console/internal/auth"
	"github.com/quantashield/console/internal/config"
	"github.com/quantashield/console/internal/session"
	"github.com/quantashield/console/internal/storage/inmem"
	"github.com/quantashield/console/internal/storage/kv/sqlite"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the durable key-value storage backing the session store
	log.Info().Str("file", cfg.DatabaseFile).Msg("initializing durable storage...")
	persistence := sqlite.New(cfg.DatabaseFile)
	if err := persistence.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the durable storage")
	}
	defer persistence.Close()

	// Create the session store and restore a possibly persisted session of a previous run
	sessions := session.NewStore(persistence)
	restored, err := sessions.Restore(func(token string) error {
		_, parseErr := auth.ParseToken(token, time.Now())
		return parseErr
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not restore the persisted session")
	}
	if restored != nil {
		log.Info().Str("username", restored.Username).Str("provider", restored.Provider).Msg("restored a persisted session")
	}

	// Initialize the in-memory data storage driver and seed it with sample data
	log.Info().Msg("initializing data storage...")
	driver, err := inmem.New()
	if err != nil {
		log.Fatal().Err(err).Msg("could not create the data storage driver")
	}
	if err := driver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the data storage driver")
	}
	defer driver.Close()

	// Start up the console API
	log.Info().Str("listen_address", cfg.ListenAddress).Msg("starting up the console API...")
	apis := &api.Service{
		Config:   cfg,
		Storage:  driver,
		Sessions: sessions,
		OnLogin: func(ses *session.Session) {
			log.Info().Str("username", ses.Username).Str("provider", ses.Provider).Msg("login complete")
		},
	}
	apiErrs := make(chan error, 1)
	apis.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the console API...")
		apis.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
