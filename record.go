package plaidsheets

// Column names one field of the row schema.
type Column string

const (
	ColumnRollup          Column = "Rollup"
	ColumnDate            Column = "Date"
	ColumnName            Column = "Name"
	ColumnMerchantName    Column = "Marchant Name" // header misspelled since day one, renaming breaks existing sheets
	ColumnPaymentChannel  Column = "Payment Channel"
	ColumnISOCurrencyCode Column = "ISO Currency Code"
	ColumnPlaidCategory1  Column = "Plaid Category 1"
	ColumnPlaidCategory2  Column = "Plaid Category 2"
	ColumnPlaidCategory3  Column = "Plaid Category 3"
	ColumnCategoryID      Column = "Category ID"
	ColumnTransactionType Column = "Transaction Type"
	ColumnTransactionID   Column = "Transaction ID"
	ColumnOwner           Column = "Owner"
	ColumnAccount         Column = "Account"
	ColumnMask            Column = "Mask"
	ColumnAccountName     Column = "Account Name"
	ColumnAccountType     Column = "Account Type"
	ColumnAccountSubtype  Column = "Account Subtype"
	ColumnAddress         Column = "Address"
	ColumnCity            Column = "City"
	ColumnRegion          Column = "Region"
	ColumnPostalCode      Column = "Postal Code"
	ColumnCountry         Column = "Country"
	ColumnStoreNumber     Column = "Store Number"
	ColumnCategory        Column = "Category"
	ColumnAmount          Column = "Amount"
)

// Schema is the authoritative column order of the stored table. MapRow emits
// records in exactly this order and it is not configurable at runtime.
var Schema = []Column{
	ColumnRollup,
	ColumnDate,
	ColumnName,
	ColumnMerchantName,
	ColumnPaymentChannel,
	ColumnISOCurrencyCode,
	ColumnPlaidCategory1,
	ColumnPlaidCategory2,
	ColumnPlaidCategory3,
	ColumnCategoryID,
	ColumnTransactionType,
	ColumnTransactionID,
	ColumnOwner,
	ColumnAccount,
	ColumnMask,
	ColumnAccountName,
	ColumnAccountType,
	ColumnAccountSubtype,
	ColumnAddress,
	ColumnCity,
	ColumnRegion,
	ColumnPostalCode,
	ColumnCountry,
	ColumnStoreNumber,
	ColumnCategory,
	ColumnAmount,
}

// Record is one flat row in the making: column values plus the order the
// columns were set in. Serialization uses that insertion order, so a batch of
// records with identical column sets always lines up.
type Record struct {
	order  []Column
	fields map[Column]any
}

func NewRecord() Record {
	return Record{fields: make(map[Column]any)}
}

// Set stores v under c, appending c to the column order if it is new.
func (r *Record) Set(c Column, v any) {
	if _, ok := r.fields[c]; !ok {
		r.order = append(r.order, c)
	}
	r.fields[c] = v
}

// Value returns the value stored under c, or nil if the column is unset.
func (r Record) Value(c Column) any {
	return r.fields[c]
}

// Has reports whether column c has been set.
func (r Record) Has(c Column) bool {
	_, ok := r.fields[c]
	return ok
}

// Columns returns the columns in insertion order.
func (r Record) Columns() []Column {
	return r.order
}
