package stock

import (
	"errors"
	"fmt"
)

// Failure codes for an aggregation run. Every error the engine returns is an
// *AggregationError carrying one of these codes plus the underlying cause;
// nothing escapes as a raw store error.
const (
	// ErrCodeCatalogUnavailable: the material catalog could not be read.
	// Aggregation aborts before touching any ledger or the sink.
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"

	// ErrCodeLedgerRead: a ledger (or the sink's starting-balance slot)
	// could not be read.
	ErrCodeLedgerRead = "LEDGER_READ_FAILURE"

	// ErrCodeSinkWrite: the summary was computed but could not be persisted.
	// The computed rows are still returned alongside this error.
	ErrCodeSinkWrite = "SINK_WRITE_FAILURE"
)

// AggregationError is the single structured failure surfaced by a stock
// aggregation run.
type AggregationError struct {
	Code  string
	Table string
	Err   error
}

// Error implements the error interface.
func (e *AggregationError) Error() string {
	return fmt.Sprintf("stock aggregation failed (%s, table %q): %v", e.Code, e.Table, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AggregationError) Unwrap() error {
	return e.Err
}

// AsAggregationError unwraps err into an *AggregationError if it is one.
func AsAggregationError(err error) (*AggregationError, bool) {
	var aggErr *AggregationError
	if errors.As(err, &aggErr) {
		return aggErr, true
	}
	return nil, false
}

func newCatalogUnavailable(table string, err error) *AggregationError {
	return &AggregationError{Code: ErrCodeCatalogUnavailable, Table: table, Err: err}
}

func newLedgerReadFailure(table string, err error) *AggregationError {
	return &AggregationError{Code: ErrCodeLedgerRead, Table: table, Err: err}
}

func newSinkWriteFailure(table string, err error) *AggregationError {
	return &AggregationError{Code: ErrCodeSinkWrite, Table: table, Err: err}
}
