// Package models defines data structures for the screener.
package models

// FundamentalSnapshot holds the named fundamental fields reported by the
// market data provider for one symbol. Pointer fields are nil when the
// provider did not report the field, so "not reported" stays distinct from
// a genuine zero all the way through the pipeline.
type FundamentalSnapshot struct {
	Symbol        string   `json:"symbol"`
	Company       string   `json:"company,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	PE            *float64 `json:"pe_ratio,omitempty"`
	PB            *float64 `json:"pb_ratio,omitempty"`
	AvgVolume     *int64   `json:"avg_volume,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	Price         *float64 `json:"current_price,omitempty"`
}

// StockRecord is one assembled row per symbol: the fundamentals snapshot
// plus the derived 200-day moving average. Records are immutable once
// assembled and are discarded after the run.
type StockRecord struct {
	Symbol        string   `json:"symbol"`
	Company       string   `json:"company,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	PE            *float64 `json:"pe_ratio,omitempty"`
	PB            *float64 `json:"pb_ratio,omitempty"`
	AvgVolume     *int64   `json:"avg_volume,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	Price         *float64 `json:"current_price,omitempty"`
	MA200         float64  `json:"ma_200"` // 0 = undeterminable (fewer than 200 closes)
}

// Float returns a pointer to v. Convenience for building snapshots.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int64) *int64 {
	return &v
}

// FloatValue returns the value of p, or 0 when the field was not reported.
func FloatValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// IntValue returns the value of p, or 0 when the field was not reported.
func IntValue(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
