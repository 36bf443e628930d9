package attachment

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/blake2b"

	"storeops/infrastructure/sqlite"
	"storeops/models"
)

// Ref derives the opaque reference string for a blob: the blake2b-256 hex
// digest, so re-uploading identical bytes yields the same reference.
func Ref(blob []byte) string {
	sum := blake2b.Sum256(blob)
	return hex.EncodeToString(sum[:])
}

// Resolve stores an uploaded image and returns its reference. Existing
// references are reused untouched.
func Resolve(ctx context.Context, tx bun.Tx, blob []byte, mime, name string) (string, error) {
	ref := Ref(blob)

	var existing models.Attachment
	err := tx.NewSelect().Model(&existing).Column("ref").Where("ref = ?", ref).Limit(1).Scan(ctx)
	if err == nil {
		return ref, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	att := models.Attachment{Ref: ref, Blob: blob, MIME: mime, Name: name}
	if _, err := tx.NewInsert().Model(&att).Exec(ctx); err != nil {
		return "", err
	}
	return ref, nil
}

// Load returns the stored attachment for a reference.
func Load(ctx context.Context, db *sqlite.DB, ref string) (models.Attachment, error) {
	var att models.Attachment
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&att).Where("ref = ?", ref).Limit(1).Scan(ctx)
	})
	return att, err
}
