package reports

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ReportsPage renders the counts and export links.
func ReportsPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<main class="page"><h2>Reports</h2>`)

		b.WriteString(`<div class="summary-card"><span class="summary-number">`)
		b.WriteString(toString(data.Total))
		b.WriteString(`</span><span class="muted">tickets submitted</span></div>`)

		if len(data.ByStatus) > 0 {
			b.WriteString(`<h3>By Status</h3><div class="summary-list">`)
			for _, s := range data.ByStatus {
				writeCountRow(&b, s.Status, s.Count)
			}
			b.WriteString(`</div>`)
		}

		if len(data.ByTemplate) > 0 {
			b.WriteString(`<h3>By Template</h3><div class="summary-list">`)
			for _, t := range data.ByTemplate {
				writeCountRow(&b, t.TemplateName, t.Count)
			}
			b.WriteString(`</div>`)
		}

		b.WriteString(`<h3>Exports</h3><div class="export-links">`)
		b.WriteString(`<a class="button" href="/reports/tickets.csv" download>Download CSV</a>`)
		b.WriteString(`<a class="button" href="/reports/tickets.pdf" download>Download PDF</a>`)
		b.WriteString(`</div></main>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeCountRow(b *strings.Builder, label string, count int64) {
	b.WriteString(`<div class="summary-row"><span>`)
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</span><strong>`)
	b.WriteString(toString(count))
	b.WriteString(`</strong></div>`)
}
