package plaidsheets

import "testing"

func TestNewAccountIndex(t *testing.T) {
	index := NewAccountIndex([]Account{
		{ID: "a1", Name: "Checking"},
		{ID: "a2", Name: "Savings"},
	})

	account, ok := index.Lookup("a1")
	if !ok || account.Name != "Checking" {
		t.Errorf("Lookup(a1) = %v, %v, want Checking, true", account.Name, ok)
	}
	if _, ok := index.Lookup("missing"); ok {
		t.Error("Lookup(missing) = true, want false")
	}
}

// Duplicate account IDs keep the last occurrence. The upstream payload should
// never contain duplicates, this test pins the behavior so a change to it is
// deliberate.
func TestNewAccountIndexDuplicateLastWins(t *testing.T) {
	index := NewAccountIndex([]Account{
		{ID: "a1", Name: "first"},
		{ID: "a1", Name: "second"},
	})

	account, _ := index.Lookup("a1")
	if account.Name != "second" {
		t.Errorf("Lookup(a1).Name = %s, want second", account.Name)
	}
}
