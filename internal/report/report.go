// Package report formats screening results for the console and persists
// the final set to a timestamped CSV export.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/bobmcallan/vire-screener/internal/common"
	"github.com/bobmcallan/vire-screener/internal/models"
)

// Export artifact name: undervalued_stocks_2026-08-25_153000.csv
const (
	exportPrefix     = "undervalued_stocks_"
	exportTimeLayout = "2006-01-02_150405"
)

// Reporter writes console output and the final CSV export.
type Reporter struct {
	out       io.Writer
	outputDir string
	logger    *common.Logger
	now       func() time.Time
}

// New creates a Reporter writing console output to out and CSV exports into
// outputDir.
func New(out io.Writer, outputDir string, logger *common.Logger) *Reporter {
	return &Reporter{
		out:       out,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

// Progress prints one line per fetched ticker.
func (r *Reporter) Progress(rec *models.StockRecord) {
	fmt.Fprintf(r.out, "  > fetched %s (P/E: %s, volume: %s, price: %s)\n",
		rec.Symbol,
		common.FormatOptionalFloat(rec.PE),
		common.FormatOptionalInt(rec.AvgVolume),
		common.FormatOptionalFloat(rec.Price))
}

// NoTickers reports the terminal "no symbols retrieved" outcome.
func (r *Reporter) NoTickers() {
	fmt.Fprintln(r.out, "No tickers retrieved from any source. Nothing to screen.")
}

// NoData reports the terminal "no records fetched" outcome.
func (r *Reporter) NoData() {
	fmt.Fprintln(r.out, "No market data could be fetched. Nothing to screen.")
}

// RawRecords dumps every assembled record before filtering.
func (r *Reporter) RawRecords(records []*models.StockRecord) {
	fmt.Fprintf(r.out, "\n--- Raw data (%d records) ---\n", len(records))
	r.table(records)
}

// Report prints the filtered result set. A non-empty set is additionally
// exported to CSV on a best-effort basis: an export failure is logged but
// never fails the run.
func (r *Reporter) Report(matches []*models.StockRecord) error {
	if len(matches) == 0 {
		fmt.Fprintln(r.out, "\n--- No stocks passed all the filters. ---")
		fmt.Fprintln(r.out, "Try relaxing the criteria (e.g. a higher max P/E) or screening more stocks.")
		return nil
	}

	fmt.Fprintf(r.out, "\n--- Found %d undervalued stocks ---\n", len(matches))
	r.table(matches)

	path, err := r.export(matches)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to export results")
		return nil
	}
	fmt.Fprintf(r.out, "\nSaved results to %s\n", path)
	return nil
}

// table renders the fixed column subset, indexed by symbol.
func (r *Reporter) table(records []*models.StockRecord) {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tCOMPANY\tSECTOR\tP/E\tP/B\tDIVYIELD\tAVGVOLUME\tPRICE\t200-DMA")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			rec.Symbol,
			rec.Company,
			rec.Sector,
			common.FormatOptionalFloat(rec.PE),
			common.FormatOptionalFloat(rec.PB),
			common.FormatOptionalFloat(rec.DividendYield),
			common.FormatOptionalInt(rec.AvgVolume),
			common.FormatOptionalFloat(rec.Price),
			rec.MA200)
	}
	w.Flush()
}

// export writes the full record set to a timestamped CSV, one row per
// record. Unreported fields export as 0, matching the artifact's flat
// numeric schema.
func (r *Reporter) export(records []*models.StockRecord) (string, error) {
	name := exportPrefix + r.now().Format(exportTimeLayout) + ".csv"
	path := filepath.Join(r.outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Symbol", "Company", "Sector", "P/E", "P/B", "DivYield", "AvgVolume", "Current Price", "200-DMA"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, rec := range records {
		row := []string{
			rec.Symbol,
			rec.Company,
			rec.Sector,
			formatFloat(models.FloatValue(rec.PE)),
			formatFloat(models.FloatValue(rec.PB)),
			formatFloat(models.FloatValue(rec.DividendYield)),
			strconv.FormatInt(models.IntValue(rec.AvgVolume), 10),
			formatFloat(models.FloatValue(rec.Price)),
			formatFloat(rec.MA200),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
