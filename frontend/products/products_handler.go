package products

import (
	"encoding/json"
	"net/http"
	"strings"

	"storeops/infrastructure/sqlite"
)

type searchResult struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	MRP  float64 `json:"mrp"`
}

// SearchQueryHandler answers the form's type-ahead lookups with a small
// JSON list of matching products.
func SearchQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		results := make([]searchResult, 0)

		if query != "" {
			list, err := SearchProducts(r.Context(), db, query, 20)
			if err != nil {
				http.Error(w, "failed to search products", http.StatusInternalServerError)
				return
			}
			for _, p := range list {
				results = append(results, searchResult{Code: p.Code, Name: p.Name, MRP: p.MRP})
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			http.Error(w, "failed to encode results", http.StatusInternalServerError)
		}
	}
}
