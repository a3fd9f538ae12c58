package plaidsheets

// RollupLabel is the default value of the Rollup column before rules refine
// it.
const RollupLabel = "Rollup"

// MapRow flattens one accepted transaction into a Record in Schema order.
// Owner and account are run parameters identifying whose data this is, the
// remaining account fields come from the index.
//
// A transaction referencing an account missing from the index fails with
// LookupError, one without a location sub-record with SchemaError. Both mean
// the upstream payload is inconsistent and the run must not append anything.
func MapRow(t Transaction, index AccountIndex, owner, account string) (Record, error) {
	acct, ok := index.Lookup(t.AccountID)
	if !ok {
		return Record{}, LookupError{TransactionID: t.ID, AccountID: t.AccountID}
	}
	if t.Location == nil {
		return Record{}, SchemaError{TransactionID: t.ID, Field: "location"}
	}

	merchant := t.Name
	if t.MerchantName != nil {
		merchant = *t.MerchantName
	}

	category := func(i int) string {
		if i < len(t.Category) {
			return t.Category[i]
		}
		return ""
	}

	r := NewRecord()
	r.Set(ColumnRollup, RollupLabel)
	r.Set(ColumnDate, FormatDate(t.Date))
	r.Set(ColumnName, t.Name)
	r.Set(ColumnMerchantName, merchant)
	r.Set(ColumnPaymentChannel, t.PaymentChannel)
	r.Set(ColumnISOCurrencyCode, t.ISOCurrencyCode)
	r.Set(ColumnPlaidCategory1, category(0))
	r.Set(ColumnPlaidCategory2, category(1))
	r.Set(ColumnPlaidCategory3, category(2))
	r.Set(ColumnCategoryID, t.CategoryID)
	r.Set(ColumnTransactionType, t.TransactionType)
	r.Set(ColumnTransactionID, t.ID)
	r.Set(ColumnOwner, owner)
	r.Set(ColumnAccount, account)
	r.Set(ColumnMask, acct.Mask)
	r.Set(ColumnAccountName, acct.Name)
	r.Set(ColumnAccountType, acct.Type)
	r.Set(ColumnAccountSubtype, acct.Subtype)
	r.Set(ColumnAddress, t.Location.Address)
	r.Set(ColumnCity, t.Location.City)
	r.Set(ColumnRegion, t.Location.Region)
	r.Set(ColumnPostalCode, t.Location.PostalCode)
	r.Set(ColumnCountry, t.Location.Country)
	r.Set(ColumnStoreNumber, t.Location.StoreNumber)
	r.Set(ColumnCategory, category(0))
	r.Set(ColumnAmount, t.Amount)
	return r, nil
}
