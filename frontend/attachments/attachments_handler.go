package attachments

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"storeops/infrastructure/attachment"
	"storeops/infrastructure/sqlite"
)

// PhotoQueryHandler streams a stored ticket photo by its content reference.
func PhotoQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := strings.TrimSpace(chi.URLParam(r, "ref"))
		if ref == "" {
			http.Error(w, "invalid attachment ref", http.StatusBadRequest)
			return
		}

		att, err := attachment.Load(r.Context(), db, ref)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "failed to load attachment", http.StatusInternalServerError)
			return
		}
		if len(att.Blob) == 0 {
			http.NotFound(w, r)
			return
		}

		mimeType := strings.TrimSpace(att.MIME)
		if mimeType == "" {
			mimeType = http.DetectContentType(att.Blob)
		}
		w.Header().Set("Content-Type", mimeType)
		// References are content-addressed, so the bytes never change.
		w.Header().Set("Cache-Control", "private, max-age=86400, immutable")
		if name := strings.TrimSpace(att.Name); name != "" {
			w.Header().Set("Content-Disposition", "inline; filename=\""+name+"\"")
		}
		_, _ = w.Write(att.Blob)
	}
}
