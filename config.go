package plaidsheets

import (
	"encoding/json"
	"time"
)

// Item is one owner/account pair to import. Each item runs as an independent
// import, a failure in one does not stop the others.
type Item struct {
	// Owner and Account label whose data this is, they are copied verbatim
	// into every row.
	Owner   string `json:"owner"`
	Account string `json:"account"`

	// AccessToken authorizes the aggregation API for this item.
	AccessToken string `json:"access_token"`
}

// Items is a list of Item in JSON. For example:
// '[{"owner": "alice", "account": "Checking", "access_token": "access-..."}]'
type Items []Item

// Decode implements `envconfig.Decoder` for Items to decode JSON properly
func (items *Items) Decode(value string) error {
	return json.Unmarshal([]byte(value), items)
}

// Config is loaded from the environment during execution with cmd/plaidsheets
type Config struct {
	// LogLevel sets the logging level: trace, debug, info, warn, error or
	// fatal
	LogLevel string `envconfig:"PLAIDSHEETS_LOG_LEVEL" default:"info"`

	// LogFormat sets the log output format: text or json
	LogFormat string `envconfig:"PLAIDSHEETS_LOG_FORMAT" default:"text"`

	// Interval is how often to run the import, 0=run only once
	Interval time.Duration `envconfig:"PLAIDSHEETS_INTERVAL" default:"0s"`

	// Items to import, see Items for the format
	Items Items `envconfig:"PLAIDSHEETS_ITEMS"`

	// WindowInitialDays is how far back to fetch when the sheet holds no
	// data yet. The default covers the aggregation API's maximum history.
	WindowInitialDays int `envconfig:"PLAIDSHEETS_WINDOW_INITIAL_DAYS" default:"800"`

	// WindowOverlapDays is re-fetched before the most recent stored date to
	// pick up transactions that settled late. Deduplication drops anything
	// already stored.
	WindowOverlapDays int `envconfig:"PLAIDSHEETS_WINDOW_OVERLAP_DAYS" default:"10"`

	// StartDate and EndDate override the computed fetch window for a one-off
	// date range import. For example: 2006-01-02
	StartDate Date `envconfig:"PLAIDSHEETS_START_DATE"`
	EndDate   Date `envconfig:"PLAIDSHEETS_END_DATE"`

	// RulesFile is the path to a JSON file of categorization rules, empty
	// disables the rule transform
	RulesFile string `envconfig:"PLAIDSHEETS_RULES_FILE"`

	// Writer selects where rows go: sheets or json. The json writer prints
	// blocks to stdout and is meant for debugging.
	Writer string `envconfig:"PLAIDSHEETS_WRITER" default:"sheets"`

	// Reader and/or writer specific settings
	Plaid    Plaid
	Sheets   Sheets
	Telegram Telegram
}

// Plaid related settings
type Plaid struct {
	// ClientID and Secret authenticate against the Plaid API
	ClientID string `envconfig:"PLAID_CLIENT_ID"`
	Secret   string `envconfig:"PLAID_SECRET"`

	// Environment selects the Plaid environment: sandbox or production
	Environment string `envconfig:"PLAID_ENVIRONMENT" default:"production"`

	// PageSize is the number of transactions requested per page
	PageSize int `envconfig:"PLAID_PAGE_SIZE" default:"500"`
}

// Sheets related settings
type Sheets struct {
	// SpreadsheetID of the spreadsheet holding the transactions tab. You can
	// find it in the URL: https://docs.google.com/spreadsheets/d/<id>/edit
	SpreadsheetID string `envconfig:"SHEETS_SPREADSHEET_ID"`

	// SheetName is the tab that holds the running transactions
	SheetName string `envconfig:"SHEETS_SHEET_NAME" default:"Transactions"`

	// CredentialsFile is the path to a Google service account key. Empty
	// falls back to application default credentials.
	CredentialsFile string `envconfig:"SHEETS_CREDENTIALS_FILE"`

	// IDColumn is the letter of the Transaction ID column
	IDColumn string `envconfig:"SHEETS_ID_COLUMN" default:"L"`

	// DateColumn is the 1-based position of the Date column
	DateColumn int `envconfig:"SHEETS_DATE_COLUMN" default:"2"`
}

// Telegram related settings
type Telegram struct {
	// Token of the bot used to deliver failure notifications, empty disables
	// notifications
	Token string `envconfig:"TELEGRAM_TOKEN"`

	// ChatID to deliver notifications to
	ChatID int64 `envconfig:"TELEGRAM_CHAT_ID"`
}
