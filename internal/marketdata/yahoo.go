// Package marketdata retrieves per-symbol fundamentals and price history
// from Yahoo Finance.
package marketdata

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/vire-screener/internal/models"
)

// Provider supplies a fundamentals snapshot and a chronological window of
// daily closes for one symbol. The contract is blocking and sequential; a
// failed call drops the symbol, it is never retried.
type Provider interface {
	Fetch(ctx context.Context, symbol string) (*models.FundamentalSnapshot, []float64, error)
}

// YahooClient implements Provider against Yahoo Finance.
type YahooClient struct {
	historyDays int
	now         func() time.Time
}

// NewYahooClient creates a client requesting historyDays trading days of
// price history per symbol.
func NewYahooClient(historyDays int) *YahooClient {
	return &YahooClient{
		historyDays: historyDays,
		now:         time.Now,
	}
}

// Fetch retrieves the fundamentals snapshot and close history for symbol.
// Either call failing fails the whole fetch; no partial result is returned.
func (c *YahooClient) Fetch(ctx context.Context, symbol string) (*models.FundamentalSnapshot, []float64, error) {
	q, err := equity.Get(symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("fundamentals fetch failed for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, nil, fmt.Errorf("fundamentals fetch returned no data for %s", symbol)
	}

	closes, err := c.history(symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("history fetch failed for %s: %w", symbol, err)
	}

	return snapshotFromEquity(symbol, q), closes, nil
}

// history fetches daily closes covering the configured trading-day window.
func (c *YahooClient) history(symbol string) ([]float64, error) {
	end := c.now()
	start := end.AddDate(0, 0, -calendarSpan(c.historyDays))

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Interval: datetime.OneDay,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
	})

	var closes []float64
	for iter.Next() {
		bar := iter.Bar()
		// Yahoo occasionally emits empty bars around holidays.
		if bar.Close.LessThanOrEqual(decimal.Zero) {
			continue
		}
		v, _ := bar.Close.Float64()
		closes = append(closes, v)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return closes, nil
}

// calendarSpan converts a trading-day window to a padded calendar-day span,
// so weekends and exchange holidays still leave enough trading days.
func calendarSpan(tradingDays int) int {
	return tradingDays*3/2 + 7
}

// snapshotFromEquity maps the provider quote onto a FundamentalSnapshot.
// Yahoo reports absent numeric fields as zero, so zero is recorded as "not
// reported" — the wire format cannot distinguish the two. Sector is not
// part of the quote endpoint and stays empty.
func snapshotFromEquity(symbol string, q *finance.Equity) *models.FundamentalSnapshot {
	snap := &models.FundamentalSnapshot{
		Symbol:  symbol,
		Company: q.ShortName,
	}
	if q.TrailingPE != 0 {
		snap.PE = models.Float(q.TrailingPE)
	}
	if q.PriceToBook != 0 {
		snap.PB = models.Float(q.PriceToBook)
	}
	if q.AverageDailyVolume3Month != 0 {
		snap.AvgVolume = models.Int(int64(q.AverageDailyVolume3Month))
	}
	if q.TrailingAnnualDividendYield != 0 {
		snap.DividendYield = models.Float(q.TrailingAnnualDividendYield)
	}
	if q.RegularMarketPrice != 0 {
		snap.Price = models.Float(q.RegularMarketPrice)
	}
	return snap
}
