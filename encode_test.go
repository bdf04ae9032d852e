package fintrack

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeTransactions_RoundTrip(t *testing.T) {
	want := []Transaction{
		{ID: 1, Date: day("2025-06-01"), Type: Income, Category: "Salary", Amount: USD(3000), Description: "june pay", PaymentMethod: "Bank Transfer"},
		{ID: 2, Date: day("2025-06-03"), Type: Expense, Category: "Food", Amount: USD(42.75), Description: "groceries, with commas", PaymentMethod: "Cash"},
	}
	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, want); err != nil {
		t.Fatalf("EncodeTransactions failed: %v", err)
	}
	got, dropped, err := DecodeTransactions(&buf)
	if err != nil || dropped != 0 {
		t.Fatalf("DecodeTransactions = dropped %d, err %v", dropped, err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Date != want[i].Date || got[i].Type != want[i].Type ||
			got[i].Category != want[i].Category || !got[i].Amount.Equal(want[i].Amount) ||
			got[i].Description != want[i].Description || got[i].PaymentMethod != want[i].PaymentMethod {
			t.Errorf("transaction %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeTransactions_DateForms(t *testing.T) {
	// dates are written with a zero time component but accepted bare too
	in := strings.Join([]string{
		"id,date,type,category,amount,description,payment_method",
		`1,2025-06-01 00:00:00,income,Salary,3000,,Cash`,
		`2,2025-06-03,expense,Food,42.75,,Cash`,
		"",
	}, "\n")
	got, dropped, err := DecodeTransactions(strings.NewReader(in))
	if err != nil || dropped != 0 {
		t.Fatalf("DecodeTransactions = dropped %d, err %v", dropped, err)
	}
	if len(got) != 2 || got[0].Date != day("2025-06-01") || got[1].Date != day("2025-06-03") {
		t.Errorf("dates = %v, want both forms accepted at day granularity", got)
	}
}

func TestDecodeTransactions_DropsMalformedRows(t *testing.T) {
	in := strings.Join([]string{
		"id,date,type,category,amount,description,payment_method",
		`1,2025-06-01 00:00:00,income,Salary,3000,,Cash`,
		`2,not-a-date,expense,Food,10,,Cash`,
		`3,2025-06-03,transfer,Food,10,,Cash`,
		`4,2025-06-04,expense,Food,ten,,Cash`,
		`5,2025-06-05,expense,Food`,
		`6,2025-06-06,expense,Food,25,,Cash`,
		"",
	}, "\n")
	got, dropped, err := DecodeTransactions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeTransactions failed: %v", err)
	}
	if dropped != 4 {
		t.Errorf("dropped = %d, want 4", dropped)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 6 {
		t.Errorf("kept = %v, want rows 1 and 6", got)
	}
}

func TestDecodeTransactions_CoercesNegativeAmount(t *testing.T) {
	// the insert path stores absolute amounts; a hand-edited negative value
	// must not reintroduce a signed one
	in := strings.Join([]string{
		"id,date,type,category,amount,description,payment_method",
		`1,2025-06-01,expense,Food,-42.50,,Cash`,
		"",
	}, "\n")
	got, dropped, err := DecodeTransactions(strings.NewReader(in))
	if err != nil || dropped != 0 || len(got) != 1 {
		t.Fatalf("DecodeTransactions = %v, dropped %d, err %v", got, dropped, err)
	}
	if !got[0].Amount.Equal(USD(42.50)) {
		t.Errorf("amount = %s, want coerced %s", got[0].Amount, USD(42.50))
	}
}

func TestDecodeTransactions_ColumnOrderInsignificant(t *testing.T) {
	in := strings.Join([]string{
		"type,amount,id,date,payment_method,category,description",
		`income,3000,1,2025-06-01,Cash,Salary,shuffled columns`,
		"",
	}, "\n")
	got, dropped, err := DecodeTransactions(strings.NewReader(in))
	if err != nil || dropped != 0 || len(got) != 1 {
		t.Fatalf("DecodeTransactions = %v, dropped %d, err %v", got, dropped, err)
	}
	if got[0].Category != "Salary" || !got[0].Amount.Equal(USD(3000)) {
		t.Errorf("transaction = %+v, want fields mapped by header name", got[0])
	}
}

func TestDecodeTransactions_MissingColumnIsFatal(t *testing.T) {
	in := "id,date,type,category,amount,description\n"
	if _, _, err := DecodeTransactions(strings.NewReader(in)); err == nil {
		t.Error("want error for a file missing the payment_method column")
	}
}

func TestEncodeDecodeInvestments_RoundTrip(t *testing.T) {
	want := []Investment{
		{ID: 1, Symbol: "AAPL", Quantity: Q(10.5), PurchasePrice: USD(150), PurchaseDate: day("2025-06-01"), TotalCost: USD(1575)},
		{ID: 2, Symbol: "GOOG", Quantity: Q(2), PurchasePrice: USD(99.99), PurchaseDate: day("2025-06-10"), TotalCost: USD(199.98)},
	}
	var buf bytes.Buffer
	if err := EncodeInvestments(&buf, want); err != nil {
		t.Fatalf("EncodeInvestments failed: %v", err)
	}
	got, dropped, err := DecodeInvestments(&buf)
	if err != nil || dropped != 0 {
		t.Fatalf("DecodeInvestments = dropped %d, err %v", dropped, err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lots, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Symbol != want[i].Symbol ||
			!got[i].Quantity.Equal(want[i].Quantity) || !got[i].PurchasePrice.Equal(want[i].PurchasePrice) ||
			got[i].PurchaseDate != want[i].PurchaseDate || !got[i].TotalCost.Equal(want[i].TotalCost) {
			t.Errorf("lot %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeInvestments_DropsNonPositiveLots(t *testing.T) {
	// lots the add path would reject must not sneak in through the file
	in := strings.Join([]string{
		"id,symbol,quantity,purchase_price,purchase_date,total_cost",
		`1,AAPL,0,150,2025-06-01 00:00:00,0`,
		`2,AAPL,-5,150,2025-06-01 00:00:00,-750`,
		`3,AAPL,10,0,2025-06-01 00:00:00,0`,
		`4,AAPL,10,-150,2025-06-01 00:00:00,-1500`,
		`5,AAPL,10,150,2025-06-01 00:00:00,1500`,
		"",
	}, "\n")
	got, dropped, err := DecodeInvestments(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeInvestments failed: %v", err)
	}
	if dropped != 4 {
		t.Errorf("dropped = %d, want 4", dropped)
	}
	if len(got) != 1 || got[0].ID != 5 {
		t.Errorf("kept = %v, want only row 5", got)
	}
}

func TestDecodeInvestments_RecomputesTotalCost(t *testing.T) {
	// a stale total_cost on disk is ignored
	in := strings.Join([]string{
		"id,symbol,quantity,purchase_price,purchase_date,total_cost",
		`1,aapl,10,150,2025-06-01 00:00:00,999999`,
		"",
	}, "\n")
	got, dropped, err := DecodeInvestments(strings.NewReader(in))
	if err != nil || dropped != 0 || len(got) != 1 {
		t.Fatalf("DecodeInvestments = %v, dropped %d, err %v", got, dropped, err)
	}
	if !got[0].TotalCost.Equal(USD(1500)) {
		t.Errorf("total cost = %s, want recomputed %s", got[0].TotalCost, USD(1500))
	}
	if got[0].Symbol != "AAPL" {
		t.Errorf("symbol = %q, want normalized %q", got[0].Symbol, "AAPL")
	}
}
