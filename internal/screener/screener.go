// Package screener orchestrates the undervalued-stock screening run:
// per-symbol market data collection, indicator derivation, record assembly,
// and threshold filtering.
package screener

import (
	"context"
	"time"

	"github.com/bobmcallan/vire-screener/internal/common"
	"github.com/bobmcallan/vire-screener/internal/marketdata"
	"github.com/bobmcallan/vire-screener/internal/models"
	"github.com/bobmcallan/vire-screener/internal/report"
	"github.com/bobmcallan/vire-screener/internal/signals"
)

// Service runs the screening pipeline over a symbol list.
type Service struct {
	provider   marketdata.Provider
	reporter   *report.Reporter
	thresholds Thresholds
	maWindow   int
	delay      time.Duration
	logger     *common.Logger

	sleep func(time.Duration) // swapped out in tests
}

// NewService creates a screening service. delay is the fixed pause applied
// after every per-symbol fetch attempt.
func NewService(provider marketdata.Provider, reporter *report.Reporter, thresholds Thresholds, maWindow int, delay time.Duration, logger *common.Logger) *Service {
	return &Service{
		provider:   provider,
		reporter:   reporter,
		thresholds: thresholds,
		maWindow:   maWindow,
		delay:      delay,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Run screens the given symbols end to end. Per-symbol failures are logged
// and skipped; the run only ends early when there is nothing left to screen.
func (s *Service) Run(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		s.reporter.NoTickers()
		return nil
	}

	s.logger.Info().Int("tickers", len(symbols)).Msg("starting screening run")

	records := s.collect(ctx, symbols)
	if len(records) == 0 {
		s.reporter.NoData()
		return nil
	}

	s.reporter.RawRecords(records)

	matches := ApplyFilters(records, s.thresholds)
	s.logger.Info().Int("records", len(records)).Int("matches", len(matches)).Msg("screening complete")

	return s.reporter.Report(matches)
}

// collect fetches and assembles one record per symbol, strictly
// sequentially, pausing after every attempt — success or failure — to stay
// under the provider's rate limit. A failed symbol is dropped entirely; no
// partial record is emitted.
func (s *Service) collect(ctx context.Context, symbols []string) []*models.StockRecord {
	var records []*models.StockRecord
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			s.logger.Warn().Err(ctx.Err()).Msg("screening interrupted")
			break
		}

		snap, closes, err := s.provider.Fetch(ctx, symbol)
		if err != nil {
			s.logger.Warn().Str("ticker", symbol).Err(err).Msg("failed to fetch market data")
			s.sleep(s.delay) // 404-type responses are rate-limited too
			continue
		}

		rec := assemble(symbol, snap, signals.MovingAverage(closes, s.maWindow))
		records = append(records, rec)

		s.reporter.Progress(rec)
		s.sleep(s.delay)
	}
	return records
}

// assemble merges the fundamentals snapshot and the derived moving average
// into one immutable record. Pure field copy, no validation.
func assemble(symbol string, snap *models.FundamentalSnapshot, ma200 float64) *models.StockRecord {
	return &models.StockRecord{
		Symbol:        symbol,
		Company:       snap.Company,
		Sector:        snap.Sector,
		PE:            snap.PE,
		PB:            snap.PB,
		AvgVolume:     snap.AvgVolume,
		DividendYield: snap.DividendYield,
		Price:         snap.Price,
		MA200:         ma200,
	}
}
