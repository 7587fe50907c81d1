package provider

import (
	"context"

	"stockmail/internal/dataset"
)

// Quote is one provider observation for one symbol. Fields carries the
// provider's response members in the order they were received; their
// schema belongs to the provider.
type Quote struct {
	Symbol string
	Fields []dataset.Field
}

// Row converts the quote's provider fields into a dataset row.
func (q Quote) Row() dataset.Row {
	return dataset.NewRow(q.Fields...)
}

// Fetcher retrieves a single symbol's quote. ok is false when the provider
// had nothing usable for the symbol; err is reserved for transport faults.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, symbol string) (q Quote, ok bool, err error)
}
