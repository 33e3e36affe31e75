package main

import (
	"fmt"
	"os"

	"github.com/adilet/gigpay-ledger/internal/config"
	"github.com/adilet/gigpay-ledger/internal/db"
	"github.com/adilet/gigpay-ledger/internal/excel"
	httphandler "github.com/adilet/gigpay-ledger/internal/http"
	"github.com/adilet/gigpay-ledger/internal/http/middleware"
	"github.com/adilet/gigpay-ledger/internal/logger"
	"github.com/adilet/gigpay-ledger/internal/pdf"
	"github.com/adilet/gigpay-ledger/internal/repository"
	"github.com/adilet/gigpay-ledger/internal/service"
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

	ledgerRepo := repository.NewLedgerRepository(database)
	reportRepo := repository.NewReportRepository(database)

	ledgerService := service.NewLedgerService(ledgerRepo, service.NewBalanceEngine(), pdf.NewGenerator(), cfg)
	reportService := service.NewReportService(reportRepo, excel.NewGenerator(), cfg, log)

	handler := httphandler.NewHandler(ledgerService, reportService, log)
	profileMiddleware := middleware.Profile(ledgerRepo)
	router := httphandler.NewRouter(handler, profileMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting ledger service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
