package screener

import "github.com/bobmcallan/vire-screener/internal/models"

// Thresholds holds the screening criteria for one run. Values arrive from
// config rather than ambient constants so tests can screen with alternative
// criteria.
type Thresholds struct {
	MaxPE            float64
	MaxPB            float64
	MinDividendYield float64
	MinAvgVolume     int64
}

// ApplyFilters returns the records satisfying every screening condition.
// The filter is a pure conjunction: evaluation order does not matter and
// re-filtering the output yields the same set.
func ApplyFilters(records []*models.StockRecord, t Thresholds) []*models.StockRecord {
	var passed []*models.StockRecord
	for _, r := range records {
		if passes(r, t) {
			passed = append(passed, r)
		}
	}
	return passed
}

// passes reports whether one record clears every threshold. Unreported
// fields never pass: a stock with no P/E is not a stock with a P/E of
// exactly zero, but both are excluded. The moving average must itself be
// determinable (> 0) before the price-above-trend condition counts.
func passes(r *models.StockRecord, t Thresholds) bool {
	if r.PE == nil || *r.PE <= 0 || *r.PE >= t.MaxPE {
		return false
	}
	if r.PB == nil || *r.PB <= 0 || *r.PB >= t.MaxPB {
		return false
	}
	if r.DividendYield == nil || *r.DividendYield <= t.MinDividendYield {
		return false
	}
	if r.AvgVolume == nil || *r.AvgVolume <= t.MinAvgVolume {
		return false
	}
	if r.MA200 <= 0 {
		return false
	}
	if r.Price == nil || *r.Price <= r.MA200 {
		return false
	}
	return true
}
