package plaidsheets

// Filter returns the transactions that should be persisted: settled ones
// whose ID is not already in storage. Order is preserved and nothing is
// reported for dropped transactions, seeing the same transaction again on
// re-import is steady-state behavior, not an error.
func Filter(transactions []Transaction, seen IDSet) []Transaction {
	accepted := []Transaction{}
	for _, t := range transactions {
		if t.Pending {
			continue
		}
		if seen.Has(t.ID) {
			continue
		}
		accepted = append(accepted, t)
	}
	return accepted
}
