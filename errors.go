package fintrack

import "fmt"

// ValidationError reports malformed or out-of-range input. It always names
// the offending field so callers can report it without parsing message text.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// errInvalid builds a *ValidationError with a formatted reason.
func errInvalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// PersistenceError reports a durable-storage write failure. The in-memory
// mutation that triggered the write has already been applied and remains
// the source of truth for the rest of the process lifetime; the caller
// decides whether to retry the save.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ProviderError reports a price-provider failure for one symbol. It is never
// fatal to a valuation: the ledger degrades to the purchase-price fallback.
type ProviderError struct {
	Symbol string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("no usable price for %s: %v", e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
