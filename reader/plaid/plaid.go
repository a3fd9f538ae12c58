// Package plaid reads transactions from the Plaid API. It owns everything the
// core pipeline treats as the client's business: environment selection,
// authentication headers, offset pagination and retries.
package plaid

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/plaid/plaid-go/v41/plaid"

	"github.com/plaidsheets/plaidsheets"
)

const retryAttempts = 3

type Reader struct {
	Config *plaidsheets.Config
	Client *plaid.APIClient
	logger *slog.Logger
}

// NewReader returns a new Plaid reader for the environment named in config.
func NewReader(cfg *plaidsheets.Config) (Reader, error) {
	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.Plaid.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Plaid.Secret)

	switch cfg.Plaid.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	default:
		return Reader{}, fmt.Errorf("invalid plaid environment: %s", cfg.Plaid.Environment)
	}

	return Reader{
		Config: cfg,
		Client: plaid.NewAPIClient(configuration),
		logger: slog.Default().With("reader", "plaid"),
	}, nil
}

// Fetch returns all accounts and transactions for accessToken between start
// and end, paging through the window until every transaction is read.
func (r Reader) Fetch(ctx context.Context, accessToken string, start, end time.Time) ([]plaidsheets.Account, []plaidsheets.Transaction, error) {
	var accounts []plaidsheets.Account
	var transactions []plaidsheets.Transaction

	offset := 0
	for {
		resp, err := r.page(ctx, accessToken, start, end, offset)
		if err != nil {
			return nil, nil, plaidsheets.UpstreamError{Operation: "transactions/get", Err: err}
		}

		// Every page repeats the account list, keep the first
		if offset == 0 {
			for _, a := range resp.GetAccounts() {
				accounts = append(accounts, mapAccount(a))
			}
		}

		page := resp.GetTransactions()
		for _, t := range page {
			mapped, err := mapTransaction(t)
			if err != nil {
				return nil, nil, err
			}
			transactions = append(transactions, mapped)
		}

		offset += len(page)
		r.logger.Debug("fetched page", "transactions", len(page), "total", resp.GetTotalTransactions())
		if len(page) == 0 || offset >= int(resp.GetTotalTransactions()) {
			break
		}
	}

	r.logger.Info("fetched transactions", "accounts", len(accounts), "transactions", len(transactions))
	return accounts, transactions, nil
}

func (r Reader) page(ctx context.Context, accessToken string, start, end time.Time, offset int) (*plaid.TransactionsGetResponse, error) {
	return retry.DoWithData(
		func() (*plaid.TransactionsGetResponse, error) {
			request := plaid.NewTransactionsGetRequest(
				accessToken,
				plaidsheets.FormatDate(start),
				plaidsheets.FormatDate(end),
			)
			options := plaid.NewTransactionsGetRequestOptions()
			options.SetCount(int32(r.Config.Plaid.PageSize))
			options.SetOffset(int32(offset))
			request.SetOptions(*options)

			resp, _, err := r.Client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				return nil, err
			}
			return &resp, nil
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(time.Second),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Warn("retrying page", "attempt", n+1, "error", err)
		}),
	)
}
