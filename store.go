package fintrack

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Names of the two data files inside the data directory.
const (
	transactionsFile = "transactions.csv"
	investmentsFile  = "investments.csv"
)

// Store persists the two ledger files in a directory. Every save is a
// wholesale rewrite: there is no append-only log and no partial update.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// TransactionsPath returns the path of the transactions file.
func (s *Store) TransactionsPath() string { return filepath.Join(s.dir, transactionsFile) }

// InvestmentsPath returns the path of the investments file.
func (s *Store) InvestmentsPath() string { return filepath.Join(s.dir, investmentsFile) }

// Open loads (or initializes) a ledger from the data directory. A missing
// file means an empty store; a corrupt file degrades to an empty store with
// a diagnostic rather than blocking startup. Rows dropped for per-row parse
// failures are reported the same way.
func Open(dir string) (*Ledger, error) {
	s := NewStore(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory: %w", err)
	}
	l := &Ledger{store: s}
	l.transactions = s.LoadTransactions()
	l.investments = s.LoadInvestments()
	return l, nil
}

// LoadTransactions reads the transaction file. It never fails: missing or
// unreadable files yield an empty store.
func (s *Store) LoadTransactions() []Transaction {
	path := s.TransactionsPath()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		log.Printf("cannot read %s, starting empty: %v", path, err)
		return nil
	}
	defer f.Close()
	transactions, dropped, err := DecodeTransactions(f)
	if err != nil {
		log.Printf("cannot decode %s, starting empty: %v", path, err)
		return nil
	}
	if dropped > 0 {
		log.Printf("dropped %d malformed row(s) from %s", dropped, path)
	}
	return transactions
}

// LoadInvestments reads the investment file, with the same degraded modes
// as LoadTransactions.
func (s *Store) LoadInvestments() []Investment {
	path := s.InvestmentsPath()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		log.Printf("cannot read %s, starting empty: %v", path, err)
		return nil
	}
	defer f.Close()
	investments, dropped, err := DecodeInvestments(f)
	if err != nil {
		log.Printf("cannot decode %s, starting empty: %v", path, err)
		return nil
	}
	if dropped > 0 {
		log.Printf("dropped %d malformed row(s) from %s", dropped, path)
	}
	return investments
}

// SaveTransactions rewrites the transaction file.
func (s *Store) SaveTransactions(transactions []Transaction) error {
	return s.save(s.TransactionsPath(), func(f *os.File) error {
		return EncodeTransactions(f, transactions)
	})
}

// SaveInvestments rewrites the investment file.
func (s *Store) SaveInvestments(investments []Investment) error {
	return s.save(s.InvestmentsPath(), func(f *os.File) error {
		return EncodeInvestments(f, investments)
	})
}

func (s *Store) save(path string, encode func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	if err := encode(f); err != nil {
		f.Close()
		return &PersistenceError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}

// ExportTransactionsCSV writes the full transaction history to a
// caller-named CSV file, independent of the store's own files.
func (l *Ledger) ExportTransactionsCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	defer f.Close()
	if err := EncodeTransactions(f, l.transactions); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}
