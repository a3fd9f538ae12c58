package plaidsheets

// AccountIndex looks up accounts by their aggregator-assigned ID. The
// transactions list carries no account detail, so rows are supplemented from
// this index at map time.
type AccountIndex map[string]Account

// NewAccountIndex builds an index from the accounts list of one payload.
// Duplicate IDs are last-write-wins, matching upstream behavior.
func NewAccountIndex(accounts []Account) AccountIndex {
	index := make(AccountIndex, len(accounts))
	for _, account := range accounts {
		index[account.ID] = account
	}
	return index
}

// Lookup returns the account for id and whether it was present.
func (i AccountIndex) Lookup(id string) (Account, bool) {
	account, ok := i[id]
	return account, ok
}
