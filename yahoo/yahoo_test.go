package yahoo

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fintrack/fintrack"
)

const chartBody = `{
  "chart": {
    "result": [
      {
        "meta": {
          "symbol": "AAPL",
          "shortName": "Apple Inc.",
          "regularMarketPrice": 182.5,
          "chartPreviousClose": 180.0
        },
        "timestamp": [1749772800, 1749859200, 1749945600],
        "indicators": {
          "quote": [
            {"close": [181.0, null, 182.5]}
          ]
        }
      }
    ],
    "error": null
  }
}`

// testClient serves chart requests from a local server, bypassing the cache.
func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{BaseURL: srv.URL, http: srv.Client()}
}

func TestClient_CurrentPrice(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL") {
			t.Errorf("path = %q, want /v8/finance/chart/AAPL", r.URL.Path)
		}
		fmt.Fprint(w, chartBody)
	})
	price, err := c.CurrentPrice("aapl")
	if err != nil {
		t.Fatalf("CurrentPrice failed: %v", err)
	}
	if !price.Equal(fintrack.USD(182.5)) {
		t.Errorf("price = %s, want %s", price, fintrack.USD(182.5))
	}
}

func TestClient_Quote(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody)
	})
	q, err := c.Quote("AAPL")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if q.Name != "Apple Inc." {
		t.Errorf("name = %q, want %q", q.Name, "Apple Inc.")
	}
	if !q.Change.Equal(fintrack.USD(2.5)) {
		t.Errorf("change = %s, want %s", q.Change, fintrack.USD(2.5))
	}
	// 2.5 / 180 * 100 rounded to 2 places
	if q.ChangePercent.String() != "1.39" {
		t.Errorf("change percent = %s, want 1.39", q.ChangePercent)
	}
}

func TestClient_History(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("period1") == "" || r.URL.Query().Get("period2") == "" {
			t.Errorf("query = %q, want period1 and period2 set", r.URL.RawQuery)
		}
		fmt.Fprint(w, chartBody)
	})
	series, err := c.History("AAPL", fintrack.MustParseDate("2025-06-13"), fintrack.MustParseDate("2025-06-15"))
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	// the null close is skipped
	if len(series) != 2 {
		t.Fatalf("got %d points, want 2", len(series))
	}
	if series[0].Date.String() != "2025-06-13" || !series[0].Close.Equal(fintrack.USD(181)) {
		t.Errorf("first point = %+v, want 2025-06-13 at $181.00", series[0])
	}
	if series[1].Date.String() != "2025-06-15" || !series[1].Close.Equal(fintrack.USD(182.5)) {
		t.Errorf("last point = %+v, want 2025-06-15 at $182.50", series[1])
	}
}

// closeTracker wraps response bodies to observe whether the client closes
// them on every path, error responses included.
type closeTracker struct {
	base   http.RoundTripper
	closed *bool
}

type trackedBody struct {
	io.ReadCloser
	closed *bool
}

func (b *trackedBody) Close() error {
	*b.closed = true
	return b.ReadCloser.Close()
}

func (c *closeTracker) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Body = &trackedBody{ReadCloser: resp.Body, closed: c.closed}
	return resp, nil
}

func TestClient_ClosesBodyOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "rate limited")
	}))
	t.Cleanup(srv.Close)

	var closed bool
	client := srv.Client()
	client.Transport = &closeTracker{base: client.Transport, closed: &closed}
	c := &Client{BaseURL: srv.URL, http: client}

	if _, err := c.CurrentPrice("AAPL"); err == nil {
		t.Fatal("CurrentPrice on a 429 succeeded, want error")
	}
	if !closed {
		t.Error("response body left open on an error status")
	}
}

func TestClient_UnknownSymbol(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	})
	if _, err := c.CurrentPrice("NOPE"); err == nil {
		t.Error("CurrentPrice(NOPE) succeeded, want error")
	}
	if _, err := c.History("NOPE", fintrack.Date{}, fintrack.Today()); err == nil {
		t.Error("History(NOPE) succeeded, want error")
	}
}
