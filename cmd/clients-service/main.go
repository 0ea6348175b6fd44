package main

import (
	"fmt"
	"os"

	"github.com/vaudoise/clients-contracts/internal/config"
	"github.com/vaudoise/clients-contracts/internal/db"
	"github.com/vaudoise/clients-contracts/internal/excel"
	httphandler "github.com/vaudoise/clients-contracts/internal/http"
	"github.com/vaudoise/clients-contracts/internal/logger"
	"github.com/vaudoise/clients-contracts/internal/pdf"
	"github.com/vaudoise/clients-contracts/internal/repository"
	"github.com/vaudoise/clients-contracts/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	clientRepo := repository.NewClientRepository(database)
	contractRepo := repository.NewContractRepository(database)

	excelGenerator := excel.NewGenerator()
	pdfGenerator := pdf.NewGenerator()

	clientService := service.NewClientService(clientRepo, contractRepo)
	contractService := service.NewContractService(contractRepo, clientRepo, excelGenerator, pdfGenerator)

	handler := httphandler.NewHandler(clientService, contractService, log)
	router := httphandler.NewRouter(handler, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting clients service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
