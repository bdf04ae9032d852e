// Package yahoo fetches market prices from the Yahoo Finance chart API.
//
// It implements the ledger's QuoteProvider contract. Responses are cached on
// disk with a daily expiry, so repeated valuations within a day do not hit
// the network again.
package yahoo

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/fintrack/fintrack"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public Yahoo Finance query endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client queries the Yahoo Finance v8 chart API.
type Client struct {
	// BaseURL can be overridden for tests.
	BaseURL string
	http    *http.Client
}

var _ fintrack.QuoteProvider = (*Client)(nil)

// NewClient returns a client with daily disk caching.
func NewClient() *Client {
	return &Client{BaseURL: DefaultBaseURL, http: daily()}
}

// chartURL builds the chart endpoint URL for a symbol.
func (c *Client) chartURL(symbol string, params url.Values) string {
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.BaseURL, url.PathEscape(symbol), params.Encode())
}

// CurrentPrice returns the latest market price for the symbol.
func (c *Client) CurrentPrice(symbol string) (fintrack.Money, error) {
	symbol = fintrack.NormalizeSymbol(symbol)
	params := url.Values{"interval": {"1d"}, "range": {"1d"}}

	var jobj any
	if err := jwget(c.http, c.chartURL(symbol, params), &jobj); err != nil {
		return fintrack.Money{}, fmt.Errorf("cannot fetch quote for %q: %w", symbol, err)
	}
	price, err := jfloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return fintrack.Money{}, fmt.Errorf("cannot read quote for %q: %w", symbol, err)
	}
	return fintrack.USD(price), nil
}

// Quote is a point-in-time market snapshot of one symbol.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name,omitempty"`
	Price         fintrack.Money  `json:"price"`
	PreviousClose fintrack.Money  `json:"previous_close"`
	Change        fintrack.Money  `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// Quote returns the current price with its daily change.
func (c *Client) Quote(symbol string) (*Quote, error) {
	symbol = fintrack.NormalizeSymbol(symbol)
	params := url.Values{"interval": {"1d"}, "range": {"1d"}}

	var jobj any
	if err := jwget(c.http, c.chartURL(symbol, params), &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch quote for %q: %w", symbol, err)
	}
	price, err := jfloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return nil, fmt.Errorf("cannot read quote for %q: %w", symbol, err)
	}
	q := &Quote{Symbol: symbol, Price: fintrack.USD(price)}
	// name and previous close are informative: absence is not an error
	if name, err := jsonpath.Get("$.chart.result[0].meta.shortName", jobj); err == nil {
		q.Name, _ = name.(string)
	}
	if prev, err := jfloat(jobj, "$.chart.result[0].meta.chartPreviousClose"); err == nil && prev > 0 {
		q.PreviousClose = fintrack.USD(prev)
		q.Change = q.Price.Sub(q.PreviousClose)
		q.ChangePercent = q.Change.PercentOf(q.PreviousClose)
	}
	return q, nil
}

// chartPayload is the typed shape of the chart response used for history,
// where jsonpath would be unwieldy over the parallel arrays.
type chartPayload struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns the daily close series for the symbol over [from, to].
// Days the market was closed, or with a null close, are skipped.
func (c *Client) History(symbol string, from, to fintrack.Date) ([]fintrack.ClosePrice, error) {
	symbol = fintrack.NormalizeSymbol(symbol)
	params := url.Values{
		"interval": {"1d"},
		"period1":  {fmt.Sprint(from.Unix())},
		"period2":  {fmt.Sprint(to.Add(1).Unix())},
	}

	var payload chartPayload
	if err := jwget(c.http, c.chartURL(symbol, params), &payload); err != nil {
		return nil, fmt.Errorf("cannot fetch history for %q: %w", symbol, err)
	}
	if e := payload.Chart.Error; e != nil {
		return nil, fmt.Errorf("cannot fetch history for %q: %s (%s)", symbol, e.Description, e.Code)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("no history for %q", symbol)
	}
	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no history for %q", symbol)
	}
	closes := result.Indicators.Quote[0].Close

	var series []fintrack.ClosePrice
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		day := fintrack.NewDate(time.Unix(ts, 0).UTC().Date())
		series = append(series, fintrack.ClosePrice{Date: day, Close: fintrack.USD(*closes[i])})
	}
	return series, nil
}

// jfloat extracts a float value at a jsonpath, unwrapping the single-element
// list the library sometimes returns.
func jfloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("parsing %q: not a number: %v", path, jval)
	}
	return val, nil
}
