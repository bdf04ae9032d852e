package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/fintrack/fintrack"
	"google.golang.org/genai"
)

// call dispatches a function call through the library, like the model would.
func call(t *testing.T, lib Library, name string, args map[string]any) map[string]any {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "t1", Name: name, Args: args})
	if resp == nil {
		t.Fatalf("%s returned a nil response", name)
	}
	return resp.Response
}

func TestBookkeeperTools(t *testing.T) {
	ledger := fintrack.NewLedger()
	lib := NewLibrary(bookkeeperTools(ledger))

	t.Run("add_transaction", func(t *testing.T) {
		resp := call(t, lib, "add_transaction", map[string]any{
			"type":     "expense",
			"category": "Food",
			"amount":   42.5,
			"date":     "2025-06-03",
		})
		out, ok := resp["output"].(string)
		if !ok {
			t.Fatalf("response = %v, want output", resp)
		}
		if !strings.Contains(out, "Food") || !strings.Contains(out, "42.50") {
			t.Errorf("output = %q, want the created record", out)
		}
		if got := len(ledger.Transactions(fintrack.TransactionFilter{})); got != 1 {
			t.Errorf("ledger has %d transactions, want 1", got)
		}
	})

	t.Run("add_transaction rejects a bad date", func(t *testing.T) {
		resp := call(t, lib, "add_transaction", map[string]any{
			"type":     "expense",
			"category": "Food",
			"amount":   10.0,
			"date":     "yesterday",
		})
		if _, ok := resp["error"]; !ok {
			t.Errorf("response = %v, want error", resp)
		}
	})

	t.Run("view_transactions with filters", func(t *testing.T) {
		resp := call(t, lib, "view_transactions", map[string]any{"type": "expense", "limit": 5.0})
		out, _ := resp["output"].(string)
		if !strings.Contains(out, "Food") {
			t.Errorf("output = %q, want the expense listed", out)
		}
	})

	t.Run("get_financial_summary", func(t *testing.T) {
		resp := call(t, lib, "get_financial_summary", map[string]any{})
		out, _ := resp["output"].(string)
		if !strings.Contains(out, "Financial Summary") {
			t.Errorf("output = %q, want a summary", out)
		}
	})

	t.Run("delete_transaction reports a miss", func(t *testing.T) {
		resp := call(t, lib, "delete_transaction", map[string]any{"id": 99.0})
		out, _ := resp["output"].(string)
		if !strings.Contains(out, "No transaction") {
			t.Errorf("output = %q, want a miss report, not an error", out)
		}
	})

	t.Run("unknown function", func(t *testing.T) {
		resp := call(t, lib, "no_such_tool", nil)
		if _, ok := resp["error"]; !ok {
			t.Errorf("response = %v, want error for unknown function", resp)
		}
	})
}

// staticProvider quotes every symbol at one price.
type staticProvider struct{ price float64 }

func (p staticProvider) CurrentPrice(symbol string) (fintrack.Money, error) {
	return fintrack.USD(p.price), nil
}
func (p staticProvider) History(symbol string, from, to fintrack.Date) ([]fintrack.ClosePrice, error) {
	var series []fintrack.ClosePrice
	for d := from; !d.After(to); d = d.Add(1) {
		series = append(series, fintrack.ClosePrice{Date: d, Close: fintrack.USD(p.price)})
	}
	return series, nil
}

func TestAnalystTools(t *testing.T) {
	ledger := fintrack.NewLedger()
	lib := NewLibrary(analystTools(ledger, staticProvider{price: 50}))

	t.Run("add_investment by share count", func(t *testing.T) {
		resp := call(t, lib, "add_investment", map[string]any{
			"symbol":         "aapl",
			"quantity":       10.0,
			"purchase_price": 5.0,
			"date":           "2025-06-01",
		})
		if _, ok := resp["output"]; !ok {
			t.Fatalf("response = %v, want output", resp)
		}
		invs := ledger.Investments()
		if len(invs) != 1 || invs[0].Symbol != "AAPL" || !invs[0].TotalCost.Equal(fintrack.USD(50)) {
			t.Errorf("lots = %v, want one AAPL lot costing $50", invs)
		}
		// the purchase expense came along
		if got := len(ledger.Transactions(fintrack.TransactionFilter{Category: fintrack.InvestmentPurchaseCategory})); got != 1 {
			t.Errorf("purchase expenses = %d, want 1", got)
		}
	})

	t.Run("add_investment by dollar amount at market price", func(t *testing.T) {
		resp := call(t, lib, "add_investment", map[string]any{
			"symbol": "GOOG",
			"amount": 500.0, // at $50 per share: 10 shares
		})
		if _, ok := resp["output"]; !ok {
			t.Fatalf("response = %v, want output", resp)
		}
		invs := ledger.Investments()
		last := invs[len(invs)-1]
		if last.Symbol != "GOOG" || !last.Quantity.Equal(fintrack.Q(10)) {
			t.Errorf("lot = %+v, want 10 shares of GOOG", last)
		}
	})

	t.Run("add_investment needs a quantity or an amount", func(t *testing.T) {
		resp := call(t, lib, "add_investment", map[string]any{"symbol": "MSFT"})
		if _, ok := resp["error"]; !ok {
			t.Errorf("response = %v, want error", resp)
		}
	})

	t.Run("get_net_worth", func(t *testing.T) {
		resp := call(t, lib, "get_net_worth", map[string]any{})
		out, _ := resp["output"].(string)
		if !strings.Contains(out, "Net Worth") {
			t.Errorf("output = %q, want the net-worth view", out)
		}
	})

	t.Run("get_stock_quote falls back to the bare price", func(t *testing.T) {
		resp := call(t, lib, "get_stock_quote", map[string]any{"symbol": "aapl"})
		out, _ := resp["output"].(string)
		if !strings.Contains(out, "AAPL") || !strings.Contains(out, "$50.00") {
			t.Errorf("output = %q, want AAPL at $50.00", out)
		}
	})
}
