package fintrack

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts are numbers on the wire, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Column sets of the two data files. Order is fixed on write; on read the
// header row is mapped by name, so column order is not significant.
var (
	transactionColumns = []string{"id", "date", "type", "category", "amount", "description", "payment_method"}
	investmentColumns  = []string{"id", "symbol", "quantity", "purchase_price", "purchase_date", "total_cost"}
)

// EncodeTransactions writes the transactions as CSV.
func EncodeTransactions(w io.Writer, transactions []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(transactionColumns); err != nil {
		return err
	}
	for _, t := range transactions {
		row := []string{
			strconv.Itoa(t.ID),
			t.Date.Stored(),
			string(t.Type),
			t.Category,
			t.Amount.Decimal().String(),
			t.Description,
			t.PaymentMethod,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeTransactions reads transactions back from CSV. Malformed rows are
// dropped, not fatal; the second result is how many were dropped. A missing
// required column is fatal (the file does not round-trip).
func DecodeTransactions(r io.Reader) (transactions []Transaction, dropped int, err error) {
	rows, cols, width, err := readTable(r, transactionColumns)
	if err != nil {
		return nil, 0, err
	}
	for _, row := range rows {
		if len(row) < width {
			dropped++
			continue
		}
		t, err := decodeTransaction(row, cols)
		if err != nil {
			dropped++
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, dropped, nil
}

func decodeTransaction(row []string, cols map[string]int) (Transaction, error) {
	var t Transaction
	var err error
	if t.ID, err = strconv.Atoi(row[cols["id"]]); err != nil {
		return t, err
	}
	if t.Date, err = parseStoredDate(row[cols["date"]]); err != nil {
		return t, err
	}
	if t.Type, err = ParseTransactionType(row[cols["type"]]); err != nil {
		return t, err
	}
	if t.Amount, err = ParseMoney(row[cols["amount"]]); err != nil {
		return t, err
	}
	// sign is implied by the type; a hand-edited negative amount is coerced
	// like the insert path does
	t.Amount = t.Amount.Abs()
	t.Category = row[cols["category"]]
	t.Description = row[cols["description"]]
	t.PaymentMethod = row[cols["payment_method"]]
	return t, nil
}

// EncodeInvestments writes the purchase lots as CSV.
func EncodeInvestments(w io.Writer, investments []Investment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(investmentColumns); err != nil {
		return err
	}
	for _, inv := range investments {
		row := []string{
			strconv.Itoa(inv.ID),
			inv.Symbol,
			inv.Quantity.String(),
			inv.PurchasePrice.Decimal().String(),
			inv.PurchaseDate.Stored(),
			inv.TotalCost.Decimal().String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeInvestments reads purchase lots back from CSV, dropping malformed
// rows like DecodeTransactions does. Rows with a non-positive quantity or
// purchase_price are dropped too: the valuation divides by the total
// quantity and must never see such a lot. The persisted total_cost column is
// not trusted: it is recomputed as quantity * purchase_price.
func DecodeInvestments(r io.Reader) (investments []Investment, dropped int, err error) {
	rows, cols, width, err := readTable(r, investmentColumns)
	if err != nil {
		return nil, 0, err
	}
	for _, row := range rows {
		if len(row) < width {
			dropped++
			continue
		}
		inv, err := decodeInvestment(row, cols)
		if err != nil {
			dropped++
			continue
		}
		investments = append(investments, inv)
	}
	return investments, dropped, nil
}

func decodeInvestment(row []string, cols map[string]int) (Investment, error) {
	var inv Investment
	var err error
	if inv.ID, err = strconv.Atoi(row[cols["id"]]); err != nil {
		return inv, err
	}
	if inv.Quantity, err = ParseQuantity(row[cols["quantity"]]); err != nil {
		return inv, err
	}
	if !inv.Quantity.IsPositive() {
		return inv, fmt.Errorf("non-positive quantity %s", inv.Quantity)
	}
	if inv.PurchasePrice, err = ParseMoney(row[cols["purchase_price"]]); err != nil {
		return inv, err
	}
	if !inv.PurchasePrice.IsPositive() {
		return inv, fmt.Errorf("non-positive purchase_price %s", inv.PurchasePrice.Decimal())
	}
	if inv.PurchaseDate, err = parseStoredDate(row[cols["purchase_date"]]); err != nil {
		return inv, err
	}
	inv.Symbol = NormalizeSymbol(row[cols["symbol"]])
	inv.TotalCost = inv.PurchasePrice.Mul(inv.Quantity)
	return inv, nil
}

// readTable reads a CSV table and maps the header by name, checking that
// every required column is present. Rows narrower than the header (width)
// cannot be decoded and must be dropped by the caller.
func readTable(r io.Reader, required []string) (rows [][]string, cols map[string]int, width int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are a per-row concern
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, 0, err
	}
	if len(records) == 0 {
		return nil, nil, 0, fmt.Errorf("missing header row")
	}
	cols = make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, 0, fmt.Errorf("missing required column %q", name)
		}
	}
	return records[1:], cols, len(records[0]), nil
}
