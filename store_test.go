package fintrack

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	ledger, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	mustAddTransaction(t, ledger, Income, "Salary", 3000, "2025-06-01")
	if _, err := ledger.AddInvestment("AAPL", Q(10), USD(150), day("2025-06-02")); err != nil {
		t.Fatalf("AddInvestment failed: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	txs := reopened.Transactions(TransactionFilter{})
	if len(txs) != 2 {
		t.Fatalf("got %d transactions after reload, want 2", len(txs))
	}
	// most recent first: the purchase expense, then the salary
	if txs[0].Category != InvestmentPurchaseCategory || !txs[0].Amount.Equal(USD(1500)) {
		t.Errorf("reloaded purchase expense = %+v", txs[0])
	}
	if txs[1].Type != Income || !txs[1].Amount.Equal(USD(3000)) || txs[1].Date != day("2025-06-01") {
		t.Errorf("reloaded salary = %+v", txs[1])
	}
	invs := reopened.Investments()
	if len(invs) != 1 || invs[0].Symbol != "AAPL" || !invs[0].TotalCost.Equal(USD(1500)) {
		t.Errorf("reloaded lots = %v", invs)
	}
}

func TestOpen_EmptyDirectory(t *testing.T) {
	ledger, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(ledger.Transactions(TransactionFilter{})) != 0 || len(ledger.Investments()) != 0 {
		t.Error("missing files must yield empty stores")
	}
}

func TestOpen_CorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	// a file without the required columns cannot round-trip
	if err := os.WriteFile(filepath.Join(dir, "transactions.csv"), []byte("foo,bar\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ledger, err := Open(dir)
	if err != nil {
		t.Fatalf("Open must not fail on a corrupt file: %v", err)
	}
	if len(ledger.Transactions(TransactionFilter{})) != 0 {
		t.Error("corrupt file must degrade to an empty store")
	}
}

func TestOpen_ZeroQuantityLotDoesNotBreakValuation(t *testing.T) {
	dir := t.TempDir()
	in := "id,symbol,quantity,purchase_price,purchase_date,total_cost\n" +
		"1,AAPL,0,150,2025-06-01 00:00:00,0\n"
	if err := os.WriteFile(filepath.Join(dir, "investments.csv"), []byte(in), 0o644); err != nil {
		t.Fatal(err)
	}
	ledger, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := len(ledger.Investments()); got != 0 {
		t.Fatalf("loaded %d lot(s), want the zero-quantity row quarantined", got)
	}
	// the valuation divides cost by quantity per symbol; it must stay callable
	pv := ledger.PortfolioValue(nil)
	if len(pv.Holdings) != 0 {
		t.Errorf("holdings = %v, want none", pv.Holdings)
	}
}

func TestLedger_ExportTransactionsCSV(t *testing.T) {
	ledger := NewLedger()
	mustAddTransaction(t, ledger, Income, "Salary", 3000, "2025-06-01")
	mustAddTransaction(t, ledger, Expense, "Food", 42, "2025-06-03")

	path := filepath.Join(t.TempDir(), "export.csv")
	if err := ledger.ExportTransactionsCSV(path); err != nil {
		t.Fatalf("ExportTransactionsCSV failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, dropped, err := DecodeTransactions(f)
	if err != nil || dropped != 0 || len(got) != 2 {
		t.Errorf("exported file decodes to %d transactions (dropped %d, err %v), want 2", len(got), dropped, err)
	}
}
