package settings

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PageData feeds the settings form.
type PageData struct {
	StoreCode  string
	EmployeeID string
}

// SettingsPage renders the per-session profile form.
func SettingsPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<main class="page"><h2>Settings</h2>`)
		b.WriteString(`<p class="muted">These details are stamped onto every ticket you submit.</p>`)
		b.WriteString(`<form method="POST" action="/settings/profile" class="ticket-form">`)
		b.WriteString(`<label>Store Code<input type="text" name="store_code" value="`)
		b.WriteString(html.EscapeString(data.StoreCode))
		b.WriteString(`" placeholder="e.g. ST-042"></label>`)
		b.WriteString(`<label>Employee ID<input type="text" name="employee_id" value="`)
		b.WriteString(html.EscapeString(data.EmployeeID))
		b.WriteString(`" placeholder="optional"></label>`)
		b.WriteString(`<button type="submit" class="primary">Save</button>`)
		b.WriteString(`</form></main>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
