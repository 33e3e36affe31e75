package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adilet/gigpay-ledger/internal/config"
	"github.com/adilet/gigpay-ledger/internal/model"
	"github.com/adilet/gigpay-ledger/internal/repository"
)

type ClientsExcelGenerator interface {
	Generate(report model.ClientsReport) ([]byte, error)
}

// ReportService aggregates over committed paid jobs. Store failures
// are logged and degrade to empty results rather than surfacing; the
// admin report endpoints never error on a bad range or a flaky query.
type ReportService struct {
	store        repository.ReportStore
	excel        ClientsExcelGenerator
	defaultLimit int
	log          zerolog.Logger
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func NewReportService(store repository.ReportStore, excel ClientsExcelGenerator, cfg *config.Config, log zerolog.Logger) *ReportService {
	return &ReportService{
		store:        store,
		excel:        excel,
		defaultLimit: cfg.Billing.BestClientsLimit,
		log:          log,
	}
}

// BestProfession returns the top-earning profession over paid jobs in
// the inclusive range, or nil for an empty or unusable range.
func (s *ReportService) BestProfession(ctx context.Context, start, end time.Time) *model.ProfessionTotal {
	if start.IsZero() || end.IsZero() {
		return nil
	}

	result, err := s.store.BestProfession(ctx, start, end)
	if err != nil {
		s.log.Error().Err(err).Msg("best profession query failed")
		return nil
	}
	return result
}

// BestClients returns up to limit top-paying clients, highest first.
// A non-positive limit falls back to the configured default.
func (s *ReportService) BestClients(ctx context.Context, start, end time.Time, limit int) []model.ClientTotal {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if start.IsZero() || end.IsZero() {
		return []model.ClientTotal{}
	}

	clients, err := s.store.BestClients(ctx, start, end, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("best clients query failed")
		return []model.ClientTotal{}
	}
	if clients == nil {
		clients = []model.ClientTotal{}
	}
	return clients
}

// ExportBestClients renders the best-clients report as a spreadsheet.
func (s *ReportService) ExportBestClients(ctx context.Context, start, end time.Time, limit int) (*ExportResult, error) {
	clients := s.BestClients(ctx, start, end, limit)

	content, err := s.excel.Generate(model.ClientsReport{
		PeriodStart: start,
		PeriodEnd:   end,
		Clients:     clients,
	})
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	fileName := fmt.Sprintf("best-clients-%s-%s.xlsx",
		start.Format("20060102"), end.Format("20060102"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}
