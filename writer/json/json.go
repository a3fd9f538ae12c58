// Package json implements a storage stand-in that prints appended blocks as
// JSON to stdout. It never reports stored IDs or dates, so every run imports
// the full window. Useful for debugging a configuration without touching a
// real spreadsheet.
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/plaidsheets/plaidsheets"
)

type Writer struct{}

// TransactionIDs implements plaidsheets.Storage, nothing is ever stored.
func (w Writer) TransactionIDs(ctx context.Context) (plaidsheets.IDSet, error) {
	return plaidsheets.IDSet{}, nil
}

// LatestDate implements plaidsheets.Storage.
func (w Writer) LatestDate(ctx context.Context) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

// Headers implements plaidsheets.Storage.
func (w Writer) Headers(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Append prints the block as indented JSON to stdout.
func (w Writer) Append(ctx context.Context, block [][]any, clearFirst bool) error {
	if len(block) == 0 {
		return nil
	}
	b, err := json.MarshalIndent(block, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling: %w", err)
	}
	fmt.Println(string(b))
	return nil
}

// Cleanup implements plaidsheets.Storage.
func (w Writer) Cleanup(ctx context.Context) error { return nil }

// Reset implements plaidsheets.Storage.
func (w Writer) Reset(ctx context.Context) error { return nil }
