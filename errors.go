package plaidsheets

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// SchemaError means an incoming record is missing a field the row schema
// requires. The whole run is treated as failed, nothing is appended.
type SchemaError struct {
	TransactionID string
	Field         string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("transaction %s: missing required field %q", e.TransactionID, e.Field)
}

// Is checks if the error is a schema error
func (e SchemaError) Is(target error) bool {
	_, ok := target.(SchemaError)
	return ok
}

// LookupError means a transaction references an account ID that was not in
// the accounts list of the same payload. The two lists disagreeing indicates
// an inconsistent upstream response and must not be silently defaulted.
type LookupError struct {
	TransactionID string
	AccountID     string
}

func (e LookupError) Error() string {
	return fmt.Sprintf("transaction %s: account %s not in fetched accounts", e.TransactionID, e.AccountID)
}

// Is checks if the error is a lookup error
func (e LookupError) Is(target error) bool {
	_, ok := target.(LookupError)
	return ok
}

// UpstreamError wraps a failure from the aggregation API client.
type UpstreamError struct {
	Operation string
	Err       error
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %s", e.Operation, e.Err)
}

func (e UpstreamError) Unwrap() error { return e.Err }

// Is checks if the error is an upstream error
func (e UpstreamError) Is(target error) bool {
	_, ok := target.(UpstreamError)
	return ok
}

// WriteError wraps a storage writer failure. No retry is attempted, a re-run
// is safe because deduplication is identifier based.
type WriteError struct {
	Err error
}

func (e WriteError) Error() string {
	return fmt.Sprintf("writing rows: %s", e.Err)
}

func (e WriteError) Unwrap() error { return e.Err }

// Is checks if the error is a write error
func (e WriteError) Is(target error) bool {
	_, ok := target.(WriteError)
	return ok
}
