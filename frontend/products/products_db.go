package products

import (
	"context"

	"github.com/uptrace/bun"

	"storeops/infrastructure/sqlite"
	"storeops/models"
)

// SearchProducts matches the catalog by code or name, case-insensitively,
// capped for the type-ahead picker.
func SearchProducts(ctx context.Context, db *sqlite.DB, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"

	list := make([]models.Product, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&list).
			Where("code LIKE ? COLLATE NOCASE OR name LIKE ? COLLATE NOCASE", pattern, pattern).
			Order("code").
			Limit(limit).
			Scan(ctx)
	})
	return list, err
}
