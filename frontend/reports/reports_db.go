package reports

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/uptrace/bun"

	"storeops/infrastructure/sqlite"
)

// LoadSummary aggregates the ticket counts shown on the reports page.
func LoadSummary(ctx context.Context, db *sqlite.DB) (PageData, error) {
	var data PageData
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewRaw(`SELECT COUNT(*) FROM tickets`).Scan(ctx, &data.Total); err != nil {
			return err
		}

		data.ByStatus = make([]StatusCount, 0)
		if err := tx.NewRaw(`
SELECT status, COUNT(*) AS count
FROM tickets
GROUP BY status
ORDER BY count DESC, status ASC`).Scan(ctx, &data.ByStatus); err != nil {
			return err
		}

		data.ByTemplate = make([]TemplateCount, 0)
		return tx.NewRaw(`
SELECT template_name, COUNT(*) AS count
FROM tickets
GROUP BY template_name
ORDER BY count DESC, template_name ASC`).Scan(ctx, &data.ByTemplate)
	})
	return data, err
}

func loadExportRows(ctx context.Context, db *sqlite.DB) ([]ExportRow, error) {
	rows := make([]ExportRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT id, template_name, store_code, employee_id, status,
       CASE template_name
           WHEN 'Count Correction' THEN product_code || ' -> ' || new_count
           WHEN 'Markdown Request' THEN product_code || ' -> ' || printf('%.2f', new_mrp)
           WHEN 'Imprest Submission' THEN expense_title || ' ' || printf('%.2f', expense_amount)
           ELSE COALESCE(description, '')
       END AS detail,
       strftime('%d/%m/%Y %H:%M', created_at) AS created_at,
       COALESCE(strftime('%d/%m/%Y %H:%M', decided_at), '') AS decided_at
FROM tickets
ORDER BY tickets.created_at DESC, rowid DESC`).Scan(ctx, &rows)
	})
	return rows, err
}

func writeTicketsCSV(ctx context.Context, db *sqlite.DB, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"id", "template", "store", "employee", "status", "detail", "created_at", "decided_at"}
	if err := writer.Write(header); err != nil {
		return err
	}

	rows, err := loadExportRows(ctx, db)
	if err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.ID, r.TemplateName, r.StoreCode, r.EmployeeID, r.Status, r.Detail, r.CreatedAt, r.DecidedAt}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}

func toString(n int64) string {
	return strconv.FormatInt(n, 10)
}
