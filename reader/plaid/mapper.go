package plaid

import (
	"fmt"

	"github.com/plaid/plaid-go/v41/plaid"

	"github.com/plaidsheets/plaidsheets"
)

func mapAccount(a plaid.AccountBase) plaidsheets.Account {
	return plaidsheets.Account{
		ID:      a.GetAccountId(),
		Name:    a.GetName(),
		Mask:    a.GetMask(),
		Type:    string(a.GetType()),
		Subtype: string(a.GetSubtype()),
	}
}

func mapTransaction(t plaid.Transaction) (plaidsheets.Transaction, error) {
	date, err := plaidsheets.ParseDate(t.GetDate())
	if err != nil {
		return plaidsheets.Transaction{}, fmt.Errorf("transaction %s: parsing date: %w", t.GetTransactionId(), err)
	}

	var merchant *string
	if name, ok := t.GetMerchantNameOk(); ok {
		merchant = name
	}

	location := t.GetLocation()
	return plaidsheets.Transaction{
		ID:              t.GetTransactionId(),
		AccountID:       t.GetAccountId(),
		Date:            date,
		Name:            t.GetName(),
		MerchantName:    merchant,
		Amount:          t.GetAmount(),
		ISOCurrencyCode: t.GetIsoCurrencyCode(),
		PaymentChannel:  t.GetPaymentChannel(),
		CategoryID:      t.GetCategoryId(),
		TransactionType: t.GetTransactionType(),
		Category:        t.GetCategory(),
		Pending:         t.GetPending(),
		Location: &plaidsheets.Location{
			Address:     location.GetAddress(),
			City:        location.GetCity(),
			Region:      location.GetRegion(),
			PostalCode:  location.GetPostalCode(),
			Country:     location.GetCountry(),
			StoreNumber: location.GetStoreNumber(),
		},
	}, nil
}
