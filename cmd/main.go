// Package main provides the API to manage users, transactions and category suggestions.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/cmd/httpserver"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/middleware"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/suggestionrepo"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/configpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	classifier, err := suggestionrepo.NewRepoGenAI(context.Background(), config.GeminiModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create suggestion client")
	}

	server, err := httpserver.New(db, logger, config, classifier)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("FINANCE TRACKER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
