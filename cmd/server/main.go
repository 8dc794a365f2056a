package main

import (
	"context"
	"fmt"

	"github.com/Mixik7/moltis/internal/config"
	handler "github.com/Mixik7/moltis/internal/handler/http"
	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/internal/server"
	"github.com/Mixik7/moltis/internal/service"
	"github.com/Mixik7/moltis/internal/store"
	"github.com/Mixik7/moltis/internal/vault"
	"github.com/Mixik7/moltis/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("moltis-vault")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := connectDatabase(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	v := vault.New(storages.MetadataStore, log)
	services := service.NewServices(v, storages, log)

	workers.NewWorkers(
		workers.NewAutoSealWorker(ctx, v, cfg.Vault.AutoSealTimeout, log.GetChildLogger()),
	).Run()

	handlers := handler.NewHandler(v, services, cfg.Auth, log)
	srv := server.NewServer(handlers.Init(), cfg.Server, log)
	srv.RunServer()

	// Drop the DEK before the process exits.
	v.Seal()
}

func connectDatabase(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*store.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return store.NewConnectPostgres(ctx, cfg, log)
	default:
		return store.NewConnectSQLite(ctx, cfg, log)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
