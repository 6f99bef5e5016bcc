package tickers

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/bobmcallan/vire-screener/internal/common"
)

// DefaultUserAgent identifies the fetcher as a desktop browser. The
// constituent pages serve default Go user agents inconsistently.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"

// Fetcher scrapes symbol lists from configured sources.
type Fetcher struct {
	userAgent    string
	maxPerSource int
	logger       *common.Logger
}

// NewFetcher creates a Fetcher. maxPerSource truncates each source list
// before concatenation; 0 means no cap. An empty userAgent selects
// DefaultUserAgent.
func NewFetcher(userAgent string, maxPerSource int, logger *common.Logger) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		userAgent:    userAgent,
		maxPerSource: maxPerSource,
		logger:       logger,
	}
}

// Fetch retrieves and normalizes the symbol column of one source.
func (f *Fetcher) Fetch(src Source) ([]string, error) {
	var (
		symbols  []string
		parseErr error
		found    bool
	)

	c := colly.NewCollector(colly.UserAgent(f.userAgent))

	c.OnHTML("table#"+src.TableID, func(e *colly.HTMLElement) {
		if found {
			return // first matching table wins
		}
		found = true
		symbols, parseErr = extractColumn(e.DOM, src)
	})

	if err := c.Visit(src.URL); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src.URL, err)
	}
	if parseErr != nil {
		return nil, parseErr
	}
	if !found {
		return nil, fmt.Errorf("table #%s not found at %s", src.TableID, src.URL)
	}
	return symbols, nil
}

// FetchAll fetches every source in order. A failed source logs a warning
// and contributes nothing; the run continues with whatever the others
// yielded. The combined list preserves source order and is not deduplicated.
func (f *Fetcher) FetchAll(sources ...Source) []string {
	var all []string
	for _, src := range sources {
		symbols, err := f.Fetch(src)
		if err != nil {
			f.logger.Warn().Str("source", src.Name).Err(err).Msg("failed to fetch ticker list")
			continue
		}
		if f.maxPerSource > 0 && len(symbols) > f.maxPerSource {
			symbols = symbols[:f.maxPerSource]
		}
		f.logger.Info().Str("source", src.Name).Int("count", len(symbols)).Msg("fetched ticker list")
		all = append(all, symbols...)
	}
	return all
}

// extractColumn locates the symbol column by header name and returns the
// normalized cell values, top to bottom.
func extractColumn(table *goquery.Selection, src Source) ([]string, error) {
	col := -1
	table.Find("tr").First().Find("th").EachWithBreak(func(i int, th *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(th.Text()), src.SymbolColumn) {
			col = i
			return false
		}
		return true
	})
	if col < 0 {
		return nil, fmt.Errorf("column %q not found in table #%s", src.SymbolColumn, src.TableID)
	}

	var symbols []string
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= col {
			return // header or malformed row
		}
		sym := strings.TrimSpace(cells.Eq(col).Text())
		if sym == "" {
			return
		}
		symbols = append(symbols, src.Normalize(sym))
	})
	return symbols, nil
}
