package plaidsheets

import "time"

// Account is one account as reported by the aggregation API. Account fields
// are denormalized into every row at write time, the account catalog itself
// is never persisted.
type Account struct {
	ID      string
	Name    string
	Mask    string
	Type    string
	Subtype string
}

// Location is the merchant location sub-record of a transaction. The feed
// always includes it, a transaction without one is malformed.
type Location struct {
	Address     string
	City        string
	Region      string
	PostalCode  string
	Country     string
	StoreNumber string
}

// Transaction is one raw transaction as reported by the aggregation API.
type Transaction struct {
	ID        string
	AccountID string
	Date      time.Time

	// Name is the general description, MerchantName the cleaned-up merchant
	// name if the aggregator resolved one.
	Name         string
	MerchantName *string

	Amount          float64
	ISOCurrencyCode string
	PaymentChannel  string
	CategoryID      string
	TransactionType string

	// Category is the aggregator's category path, up to three labels from
	// general to specific.
	Category []string

	// Pending transactions have not settled yet and are never persisted.
	Pending bool

	Location *Location
}

// IDSet holds the transaction IDs already present in storage. It is read once
// at the start of a run and never updated mid-run.
type IDSet map[string]bool

func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	return s[id]
}
