package products

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"storeops/infrastructure/sqlite"
)

var testDBSeq atomic.Int64

func openProductsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenMemoryDB(fmt.Sprintf("products-test-%d", testDBSeq.Add(1)))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlite.ApplyMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestSearchProducts_MatchesCodeAndName(t *testing.T) {
	db := openProductsTestDB(t)

	byCode, err := SearchProducts(context.Background(), db, "SKU12345", 20)
	if err != nil {
		t.Fatalf("search by code: %v", err)
	}
	if len(byCode) != 1 {
		t.Fatalf("expected 1 match by code, got %d", len(byCode))
	}
	if byCode[0].Name == "" || byCode[0].MRP <= 0 {
		t.Fatalf("expected seeded product fields, got %+v", byCode[0])
	}

	byName, err := SearchProducts(context.Background(), db, "rice", 20)
	if err != nil {
		t.Fatalf("search by name: %v", err)
	}
	if len(byName) == 0 {
		t.Fatalf("expected case-insensitive name match")
	}
}

func TestSearchProducts_RespectsLimit(t *testing.T) {
	db := openProductsTestDB(t)

	list, err := SearchProducts(context.Background(), db, "SKU", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(list) > 3 {
		t.Fatalf("expected at most 3 results, got %d", len(list))
	}
}
