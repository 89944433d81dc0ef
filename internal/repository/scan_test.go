package repository

import (
	"encoding/json"
	"testing"
)

// emptyRows is a result set with no rows, as returned for an empty table.
type emptyRows struct{}

func (emptyRows) Next() bool { return false }

func (emptyRows) Scan(...any) error { return nil }

func (emptyRows) Err() error { return nil }

func checkEmptyList(t *testing.T, name string, v any, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("%s marshal: %v", name, err)
	}
	// Empty collections serialize as [], never null.
	if string(b) != "[]" {
		t.Fatalf("%s: expected [], got %s", name, b)
	}
}

func TestCollectHelpersEmptyRows(t *testing.T) {
	investors, err := collectInvestors(emptyRows{})
	checkEmptyList(t, "collectInvestors", investors, err)

	assets, err := collectAssets(emptyRows{})
	checkEmptyList(t, "collectAssets", assets, err)

	wallets, err := collectWallets(emptyRows{})
	checkEmptyList(t, "collectWallets", wallets, err)

	holdings, err := collectAssetWallets(emptyRows{})
	checkEmptyList(t, "collectAssetWallets", holdings, err)

	orders, err := collectOrders(emptyRows{})
	checkEmptyList(t, "collectOrders", orders, err)

	records, err := collectTransactions(emptyRows{})
	checkEmptyList(t, "collectTransactions", records, err)
}
