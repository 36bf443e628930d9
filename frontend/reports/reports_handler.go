package reports

import (
	"net/http"
	"strconv"
	"time"

	"storeops/frontend/shared/html"
	"storeops/infrastructure/sqlite"
)

// ReportsPageQueryHandler renders the reports screen with ticket counts and
// export links.
func ReportsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := LoadSummary(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load report summary", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := html.Shell("Reports", "/reports", nil, ReportsPage(data))
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render reports page", http.StatusInternalServerError)
		}
	}
}

// TicketsExportCSVHandler downloads every ticket as CSV.
func TicketsExportCSVHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=tickets.csv")
		if err := writeTicketsCSV(r.Context(), db, w); err != nil {
			http.Error(w, "failed to export csv", http.StatusInternalServerError)
			return
		}
	}
}

// TicketsExportPDFHandler downloads every ticket as a printable PDF table.
func TicketsExportPDFHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := loadExportRows(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load tickets", http.StatusInternalServerError)
			return
		}
		data, err := renderTicketsPDF(rows, time.Now())
		if err != nil {
			http.Error(w, "failed to render pdf", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=tickets.pdf")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, _ = w.Write(data)
	}
}
