package screener

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/vire-screener/internal/common"
	"github.com/bobmcallan/vire-screener/internal/models"
	"github.com/bobmcallan/vire-screener/internal/report"
)

// stubProvider serves canned snapshots and histories keyed by symbol.
// Symbols without an entry fail the fetch.
type stubProvider struct {
	snapshots map[string]*models.FundamentalSnapshot
	closes    map[string][]float64
	fetched   []string
}

func (p *stubProvider) Fetch(_ context.Context, symbol string) (*models.FundamentalSnapshot, []float64, error) {
	p.fetched = append(p.fetched, symbol)
	snap, ok := p.snapshots[symbol]
	if !ok {
		return nil, nil, fmt.Errorf("no data for %s", symbol)
	}
	return snap, p.closes[symbol], nil
}

func goodSnapshot(symbol string) *models.FundamentalSnapshot {
	return &models.FundamentalSnapshot{
		Symbol:        symbol,
		Company:       symbol + " Corp",
		PE:            models.Float(18),
		PB:            models.Float(1.2),
		AvgVolume:     models.Int(500000),
		DividendYield: models.Float(0.03),
		Price:         models.Float(110),
	}
}

func flatCloses(n int, v float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = v
	}
	return closes
}

func newTestService(t *testing.T, p *stubProvider) (*Service, *bytes.Buffer, *int) {
	t.Helper()
	var buf bytes.Buffer
	rep := report.New(&buf, t.TempDir(), common.NewSilentLogger())
	svc := NewService(p, rep, defaultThresholds(), 200, time.Second, common.NewSilentLogger())

	sleeps := 0
	svc.sleep = func(d time.Duration) {
		if d != time.Second {
			panic("unexpected delay")
		}
		sleeps++
	}
	return svc, &buf, &sleeps
}

func TestRun_NoSymbols(t *testing.T) {
	svc, buf, _ := newTestService(t, &stubProvider{})

	if err := svc.Run(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No tickers retrieved") {
		t.Errorf("expected no-tickers notice, got:\n%s", buf.String())
	}
}

func TestRun_AllFetchesFail(t *testing.T) {
	p := &stubProvider{snapshots: map[string]*models.FundamentalSnapshot{}}
	svc, buf, sleeps := newTestService(t, p)

	if err := svc.Run(context.Background(), []string{"AAA", "BBB"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No market data could be fetched") {
		t.Errorf("expected no-data notice, got:\n%s", buf.String())
	}
	// The pause applies after failed attempts too.
	if *sleeps != 2 {
		t.Errorf("expected 2 pauses, got %d", *sleeps)
	}
}

func TestRun_FailedSymbolSkippedRunContinues(t *testing.T) {
	p := &stubProvider{
		snapshots: map[string]*models.FundamentalSnapshot{
			"GOOD.L": goodSnapshot("GOOD.L"),
		},
		closes: map[string][]float64{
			"GOOD.L": flatCloses(210, 100),
		},
	}
	svc, buf, sleeps := newTestService(t, p)

	if err := svc.Run(context.Background(), []string{"BAD", "GOOD.L"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := strings.Join(p.fetched, ","); got != "BAD,GOOD.L" {
		t.Errorf("expected sequential fetch of both symbols, got %s", got)
	}
	if *sleeps != 2 {
		t.Errorf("expected a pause per attempt, got %d", *sleeps)
	}
	out := buf.String()
	if !strings.Contains(out, "fetched GOOD.L") {
		t.Errorf("expected progress line for surviving symbol, got:\n%s", out)
	}
	if !strings.Contains(out, "Found 1 undervalued stocks") {
		t.Errorf("expected one match, got:\n%s", out)
	}
	if strings.Contains(out, "BAD") {
		t.Errorf("failed symbol must not appear in results, got:\n%s", out)
	}
}

func TestRun_ShortHistoryYieldsUndeterminableMA(t *testing.T) {
	p := &stubProvider{
		snapshots: map[string]*models.FundamentalSnapshot{
			"SHORT": goodSnapshot("SHORT"),
		},
		closes: map[string][]float64{
			"SHORT": flatCloses(150, 100), // below the 200-day window
		},
	}
	svc, buf, _ := newTestService(t, p)

	if err := svc.Run(context.Background(), []string{"SHORT"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Record is assembled (raw dump) but the MA validity condition fails.
	out := buf.String()
	if !strings.Contains(out, "Raw data (1 records)") {
		t.Errorf("expected raw dump, got:\n%s", out)
	}
	if !strings.Contains(out, "No stocks passed all the filters") {
		t.Errorf("expected empty filtered set, got:\n%s", out)
	}
}

func TestRun_EndToEndFilter(t *testing.T) {
	// X passes every threshold; Y fails on P/E.
	snapX := goodSnapshot("X")
	snapY := goodSnapshot("Y")
	snapY.PE = models.Float(30)

	p := &stubProvider{
		snapshots: map[string]*models.FundamentalSnapshot{"X": snapX, "Y": snapY},
		closes: map[string][]float64{
			"X": flatCloses(210, 100),
			"Y": flatCloses(210, 100),
		},
	}
	svc, buf, _ := newTestService(t, p)

	if err := svc.Run(context.Background(), []string{"X", "Y"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Raw data (2 records)") {
		t.Errorf("expected both records in raw dump, got:\n%s", out)
	}
	if !strings.Contains(out, "Found 1 undervalued stocks") {
		t.Errorf("expected exactly one match, got:\n%s", out)
	}
}

func TestCollect_StopsOnCancelledContext(t *testing.T) {
	p := &stubProvider{
		snapshots: map[string]*models.FundamentalSnapshot{},
	}
	svc, _, _ := newTestService(t, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := svc.collect(ctx, []string{"AAA", "BBB"})
	if len(records) != 0 || len(p.fetched) != 0 {
		t.Errorf("cancelled context must stop before any fetch, fetched %v", p.fetched)
	}
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Fatalf("unexpected ctx state: %v", ctx.Err())
	}
}

func TestAssemble_CopiesFieldsAndMA(t *testing.T) {
	snap := goodSnapshot("AAPL")
	snap.Sector = "Technology"

	rec := assemble("AAPL", snap, 100)

	if rec.Symbol != "AAPL" || rec.Company != "AAPL Corp" || rec.Sector != "Technology" {
		t.Errorf("unexpected identity fields: %+v", rec)
	}
	if rec.PE != snap.PE || rec.PB != snap.PB || rec.Price != snap.Price {
		t.Error("assembly must copy snapshot fields as-is")
	}
	if rec.MA200 != 100 {
		t.Errorf("expected MA 100, got %f", rec.MA200)
	}

	snapNil := &models.FundamentalSnapshot{Symbol: "EMPTY"}
	recNil := assemble("EMPTY", snapNil, 0)
	if recNil.PE != nil || recNil.Price != nil {
		t.Error("unreported snapshot fields must stay unreported on the record")
	}
	if recNil.MA200 != 0 {
		t.Errorf("expected undeterminable MA to stay 0, got %f", recNil.MA200)
	}
}
