package plaidsheets

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeFetcher struct {
	accounts     []Account
	transactions []Transaction
	failTokens   map[string]error

	lastStart time.Time
	lastEnd   time.Time
}

func (f *fakeFetcher) Fetch(ctx context.Context, accessToken string, start, end time.Time) ([]Account, []Transaction, error) {
	f.lastStart, f.lastEnd = start, end
	if err := f.failTokens[accessToken]; err != nil {
		return nil, nil, err
	}
	return f.accounts, f.transactions, nil
}

// fakeStorage behaves like the sheet: appended transaction IDs become visible
// to the next run, empty blocks are a no-op.
type fakeStorage struct {
	ids     IDSet
	latest  time.Time
	hasData bool
	headers []string

	appends   [][][]any
	cleanups  int
	resets    int
	appendErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{ids: IDSet{}}
}

func (s *fakeStorage) TransactionIDs(ctx context.Context) (IDSet, error) {
	ids := IDSet{}
	for id := range s.ids {
		ids[id] = true
	}
	return ids, nil
}

func (s *fakeStorage) LatestDate(ctx context.Context) (time.Time, bool, error) {
	return s.latest, s.hasData, nil
}

func (s *fakeStorage) Headers(ctx context.Context) ([]string, error) {
	return s.headers, nil
}

func (s *fakeStorage) Append(ctx context.Context, block [][]any, clearFirst bool) error {
	if len(block) == 0 {
		return nil
	}
	if s.appendErr != nil {
		return s.appendErr
	}
	idColumn := -1
	for i, column := range Schema {
		if column == ColumnTransactionID {
			idColumn = i
		}
	}
	for _, row := range block {
		if len(row) > idColumn {
			if id, ok := row[idColumn].(string); ok && id != string(ColumnTransactionID) {
				s.ids[id] = true
			}
		}
	}
	s.appends = append(s.appends, block)
	return nil
}

func (s *fakeStorage) Cleanup(ctx context.Context) error {
	s.cleanups++
	return nil
}

func (s *fakeStorage) Reset(ctx context.Context) error {
	s.resets++
	s.ids = IDSet{}
	s.hasData = false
	return nil
}

type fakeNotifier struct {
	calls []string
}

func (n *fakeNotifier) Notify(owner, account, operation string, err error) error {
	n.calls = append(n.calls, owner+"/"+account+"/"+operation)
	return nil
}

func testConfig() *Config {
	return &Config{
		Items:             Items{{Owner: "alice", Account: "Checking", AccessToken: "access-1"}},
		WindowInitialDays: DefaultWindowInitialDays,
		WindowOverlapDays: DefaultWindowOverlapDays,
	}
}

func testFetcher() *fakeFetcher {
	return &fakeFetcher{
		accounts: []Account{
			{ID: "a1", Name: "Checking", Mask: "1234", Type: "depository", Subtype: "checking"},
		},
		transactions: []Transaction{testTransaction()},
	}
}

func TestImporterRun(t *testing.T) {
	storage := newFakeStorage()
	importer := NewImporter(testConfig(), testFetcher(), storage, nil, nil)

	if err := importer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(storage.appends) != 1 {
		t.Fatalf("got %d appends, want 1", len(storage.appends))
	}
	block := storage.appends[0]

	// Empty sheet, so the block carries a header plus one data row
	if len(block) != 2 {
		t.Fatalf("block has %d rows, want 2", len(block))
	}
	if block[0][0] != string(ColumnRollup) {
		t.Errorf("first row should be the header, got %v", block[0])
	}

	row := block[1]
	want := map[int]any{
		2:  "Coffee Shop", // Name
		3:  "Coffee Shop", // Marchant Name falls back to Name
		6:  "Food",        // Plaid Category 1
		11: "t1",          // Transaction ID
		14: "1234",        // Mask
	}
	for i, value := range want {
		if row[i] != value {
			t.Errorf("row[%d] = %v, want %v", i, row[i], value)
		}
	}

	if storage.cleanups != 1 {
		t.Errorf("got %d cleanups, want 1", storage.cleanups)
	}
}

func TestImporterRunSkipsHeaderWhenPresent(t *testing.T) {
	storage := newFakeStorage()
	storage.headers = []string{"Rollup", "Date"}
	importer := NewImporter(testConfig(), testFetcher(), storage, nil, nil)

	if err := importer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(storage.appends) != 1 || len(storage.appends[0]) != 1 {
		t.Fatalf("appends = %v, want a single data row", storage.appends)
	}
}

// A second run over the same batch must append nothing, every ID is now
// stored.
func TestImporterRunIdempotent(t *testing.T) {
	storage := newFakeStorage()
	importer := NewImporter(testConfig(), testFetcher(), storage, nil, nil)

	ctx := context.Background()
	if err := importer.Run(ctx); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if err := importer.Run(ctx); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if len(storage.appends) != 1 {
		t.Errorf("got %d appends after two runs, want 1", len(storage.appends))
	}
	if storage.cleanups != 1 {
		t.Errorf("got %d cleanups, want 1, empty blocks skip the sort", storage.cleanups)
	}
}

func TestImporterRunIsolatesFailures(t *testing.T) {
	cfg := testConfig()
	cfg.Items = Items{
		{Owner: "alice", Account: "Checking", AccessToken: "bad-token"},
		{Owner: "bob", Account: "Credit", AccessToken: "access-2"},
	}

	fetcher := testFetcher()
	fetcher.failTokens = map[string]error{
		"bad-token": UpstreamError{Operation: "transactions/get", Err: errors.New("401")},
	}
	storage := newFakeStorage()
	notifier := &fakeNotifier{}
	importer := NewImporter(cfg, fetcher, storage, nil, notifier)

	err := importer.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should report the failed item")
	}
	if !errors.Is(err, UpstreamError{}) {
		t.Errorf("Run() error = %v, want to wrap UpstreamError", err)
	}

	// The failing item is reported, the second item still imports
	if len(notifier.calls) != 1 || notifier.calls[0] != "alice/Checking/fetching transactions" {
		t.Errorf("notifier calls = %v", notifier.calls)
	}
	if len(storage.appends) != 1 {
		t.Errorf("got %d appends, want 1 from the surviving item", len(storage.appends))
	}
}

// A mapping failure aborts the run before anything is written.
func TestImporterRunNoPartialAppend(t *testing.T) {
	fetcher := testFetcher()
	orphan := testTransaction()
	orphan.ID = "t2"
	orphan.AccountID = "unknown"
	fetcher.transactions = append(fetcher.transactions, orphan)

	storage := newFakeStorage()
	notifier := &fakeNotifier{}
	importer := NewImporter(testConfig(), fetcher, storage, nil, notifier)

	err := importer.Run(context.Background())
	if !errors.Is(err, LookupError{}) {
		t.Fatalf("Run() error = %v, want LookupError", err)
	}
	if len(storage.appends) != 0 {
		t.Errorf("got %d appends, want 0, failed runs must not write", len(storage.appends))
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != "alice/Checking/mapping rows" {
		t.Errorf("notifier calls = %v", notifier.calls)
	}
}

func TestImporterRunAppliesTransform(t *testing.T) {
	storage := newFakeStorage()
	transform := TransformFunc(func(records []Record) ([]Record, error) {
		for i := range records {
			records[i].Set(ColumnCategory, "Dining")
		}
		return records, nil
	})
	importer := NewImporter(testConfig(), testFetcher(), storage, transform, nil)

	if err := importer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	row := storage.appends[0][1]
	if row[24] != "Dining" { // Category column
		t.Errorf("category = %v, want Dining", row[24])
	}
}

func TestImporterWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	storage := newFakeStorage()
	storage.latest = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	storage.hasData = true

	fetcher := testFetcher()
	importer := NewImporter(testConfig(), fetcher, storage, nil, nil)
	importer.now = func() time.Time { return now }

	if err := importer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := FormatDate(fetcher.lastStart); got != "2024-03-05" {
		t.Errorf("fetch start = %s, want 2024-03-05", got)
	}
	if got := FormatDate(fetcher.lastEnd); got != "2024-06-01" {
		t.Errorf("fetch end = %s, want 2024-06-01", got)
	}
}

func TestImporterWindowOverride(t *testing.T) {
	cfg := testConfig()
	cfg.StartDate = Date(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg.EndDate = Date(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))

	fetcher := testFetcher()
	importer := NewImporter(cfg, fetcher, newFakeStorage(), nil, nil)

	if err := importer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := FormatDate(fetcher.lastStart); got != "2023-01-01" {
		t.Errorf("fetch start = %s, want 2023-01-01", got)
	}
	if got := FormatDate(fetcher.lastEnd); got != "2023-02-01" {
		t.Errorf("fetch end = %s, want 2023-02-01", got)
	}
}

func TestImporterReset(t *testing.T) {
	storage := newFakeStorage()
	storage.ids = NewIDSet("t1")
	storage.hasData = true
	importer := NewImporter(testConfig(), testFetcher(), storage, nil, nil)

	if err := importer.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if storage.resets != 1 {
		t.Errorf("got %d resets, want 1", storage.resets)
	}
	// After the clear the previously stored ID no longer dedupes
	if len(storage.appends) != 1 {
		t.Errorf("got %d appends, want 1", len(storage.appends))
	}
}

func TestImporterWriteFailure(t *testing.T) {
	storage := newFakeStorage()
	storage.appendErr = WriteError{Err: errors.New("quota exceeded")}
	notifier := &fakeNotifier{}
	importer := NewImporter(testConfig(), testFetcher(), storage, nil, notifier)

	err := importer.Run(context.Background())
	if !errors.Is(err, WriteError{}) {
		t.Fatalf("Run() error = %v, want WriteError", err)
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != "alice/Checking/appending rows" {
		t.Errorf("notifier calls = %v", notifier.calls)
	}
}
