package tickets

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"storeops/workflow"
)

// WorkflowPage renders the home screen body: the tab bar plus whatever the
// session state says is on screen (template grid, ticket form, a list, or a
// single ticket detail).
func WorkflowPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<main class="page">`)
		writeTabBar(&b, data.State.ActiveTab)

		switch {
		case data.Detail != nil:
			writeDetail(&b, data.Detail)
		case data.State.ActiveTab == workflow.TabSubmit && data.State.SelectedTemplate != "":
			writeTicketForm(&b, data.State.SelectedTemplate)
		case data.State.ActiveTab == workflow.TabSubmit:
			writeTemplateGrid(&b, data.Templates)
		case data.State.ActiveTab == workflow.TabApprovals:
			writeApprovalsList(&b, data)
		default:
			writeMyTicketsList(&b, data.Rows)
		}

		b.WriteString(`</main>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ArchivePage renders the read-only ticket history reached from the bottom
// navigation.
func ArchivePage(rows []TicketRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<main class="page"><h2>Ticket History</h2>`)
		if len(rows) == 0 {
			b.WriteString(`<p class="muted">No tickets submitted yet.</p>`)
		} else {
			b.WriteString(`<div class="ticket-list">`)
			for _, row := range rows {
				b.WriteString(`<div class="ticket-row static"><span class="ticket-row-main"><strong>`)
				b.WriteString(html.EscapeString(row.TemplateName))
				b.WriteString(`</strong><span class="muted">`)
				b.WriteString(html.EscapeString(row.StoreCode))
				b.WriteString(`</span></span><span class="ticket-row-side">`)
				writeStatusBadge(&b, row.Status)
				b.WriteString(`<span class="muted">`)
				b.WriteString(html.EscapeString(row.CreatedAt))
				b.WriteString(`</span></span></div>`)
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</main>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeTabBar(b *strings.Builder, active string) {
	tabs := []struct{ Value, Label string }{
		{workflow.TabSubmit, "Submit"},
		{workflow.TabMyTickets, "My Tickets"},
		{workflow.TabApprovals, "Approvals"},
	}
	b.WriteString(`<div class="tab-bar">`)
	for _, tab := range tabs {
		class := "tab"
		if tab.Value == active {
			class += " tab-active"
		}
		b.WriteString(`<form method="POST" action="/tab"><input type="hidden" name="tab" value="`)
		b.WriteString(tab.Value)
		b.WriteString(`"><button type="submit" class="`)
		b.WriteString(class)
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(tab.Label))
		b.WriteString(`</button></form>`)
	}
	b.WriteString(`</div>`)
}

func writeTemplateGrid(b *strings.Builder, templates []workflow.Template) {
	b.WriteString(`<h2>New Ticket</h2><p class="muted">Pick a template to get started.</p>`)
	b.WriteString(`<div class="template-grid">`)
	for _, t := range templates {
		b.WriteString(`<form method="POST" action="/templates/select"><input type="hidden" name="template" value="`)
		b.WriteString(html.EscapeString(t.Name))
		b.WriteString(`"><button type="submit" class="template-card">`)
		b.WriteString(templateIcon(t.Icon))
		b.WriteString(`<span>`)
		b.WriteString(html.EscapeString(t.Name))
		b.WriteString(`</span></button></form>`)
	}
	b.WriteString(`</div>`)
}

func writeTicketForm(b *strings.Builder, template string) {
	b.WriteString(`<div class="form-header"><form method="POST" action="/templates/clear"><button type="submit" class="link-button">&larr; Back</button></form><h2>`)
	b.WriteString(html.EscapeString(template))
	b.WriteString(`</h2></div>`)

	b.WriteString(`<form method="POST" action="/tickets" enctype="multipart/form-data" class="ticket-form">`)
	b.WriteString(`<input type="hidden" name="template" value="`)
	b.WriteString(html.EscapeString(template))
	b.WriteString(`">`)

	switch template {
	case workflow.TemplateCountCorrection:
		writeProductFields(b)
		b.WriteString(`<label>New Count<input type="number" name="new_count" inputmode="numeric" placeholder="0"></label>`)
	case workflow.TemplateMarkdownRequest:
		writeProductFields(b)
		b.WriteString(`<label>New MRP<input type="number" name="new_mrp" step="0.01" inputmode="decimal" placeholder="0.00"></label>`)
	case workflow.TemplateImprestSubmission:
		b.WriteString(`<label>Expense Title<input type="text" name="expense_title" placeholder="e.g. Office Supplies"></label>`)
		b.WriteString(`<label>Amount<input type="number" name="expense_amount" step="0.01" inputmode="decimal" placeholder="0.00"></label>`)
		b.WriteString(`<label>Purpose<textarea name="expense_purpose" rows="2" placeholder="What was this spent on?"></textarea></label>`)
	}

	b.WriteString(`<label>Description<textarea name="description" rows="3" placeholder="Optional notes"></textarea></label>`)
	b.WriteString(`<label>Photos<input type="file" name="images" accept="image/*" multiple></label>`)
	b.WriteString(`<button type="submit" class="primary">Submit Ticket</button>`)
	b.WriteString(`</form>`)
	b.WriteString(productLookupScript)
}

func writeProductFields(b *strings.Builder) {
	b.WriteString(`<label>Product<input type="text" id="product-search" name="product_code" list="product-options" autocomplete="off" placeholder="Search by code or name"></label>`)
	b.WriteString(`<datalist id="product-options"></datalist>`)
	b.WriteString(`<input type="hidden" id="product-name" name="product_name">`)
	b.WriteString(`<input type="hidden" id="product-mrp" name="product_mrp">`)
	b.WriteString(`<div id="product-summary" class="product-summary"></div>`)
}

func writeMyTicketsList(b *strings.Builder, rows []TicketRow) {
	b.WriteString(`<h2>My Tickets</h2>`)
	if len(rows) == 0 {
		b.WriteString(`<p class="muted">No tickets submitted yet.</p>`)
		return
	}
	b.WriteString(`<div class="ticket-list">`)
	for _, row := range rows {
		writeTicketRow(b, row, false)
	}
	b.WriteString(`</div>`)
}

func writeApprovalsList(b *strings.Builder, data PageData) {
	b.WriteString(`<div class="list-header"><h2>Approvals</h2>`)
	if data.State.BulkMode {
		b.WriteString(`<form method="POST" action="/selection/cancel"><button type="submit" class="link-button">Cancel</button></form>`)
	} else if len(data.Rows) > 0 {
		b.WriteString(`<form method="POST" action="/selection/mode"><button type="submit" class="link-button">Select</button></form>`)
	}
	b.WriteString(`</div>`)

	if len(data.Rows) == 0 {
		b.WriteString(`<p class="muted">Nothing waiting for approval.</p>`)
		return
	}

	b.WriteString(`<div class="ticket-list">`)
	for _, row := range data.Rows {
		writeTicketRow(b, row, data.State.BulkMode)
	}
	b.WriteString(`</div>`)

	if data.State.BulkMode {
		selected := len(data.State.Selected)
		b.WriteString(`<div class="bulk-bar"><span>`)
		fmt.Fprintf(b, "%d selected", selected)
		b.WriteString(`</span><form method="POST" action="/selection/approve"><button type="submit" class="primary"`)
		if selected == 0 {
			b.WriteString(` disabled`)
		}
		b.WriteString(`>Approve Selected</button></form></div>`)
	}
}

// writeTicketRow renders one list entry. In bulk mode tapping the row
// toggles selection; otherwise it opens the detail view.
func writeTicketRow(b *strings.Builder, row TicketRow, bulk bool) {
	action := "/tickets/" + row.ID + "/view"
	if bulk {
		action = "/selection/toggle"
	}
	b.WriteString(`<form method="POST" action="`)
	b.WriteString(action)
	b.WriteString(`">`)
	if bulk {
		b.WriteString(`<input type="hidden" name="id" value="`)
		b.WriteString(html.EscapeString(row.ID))
		b.WriteString(`">`)
	}
	b.WriteString(`<button type="submit" class="ticket-row">`)
	if bulk {
		box := `<span class="checkbox"></span>`
		if row.Selected {
			box = `<span class="checkbox checked">&#10003;</span>`
		}
		b.WriteString(box)
	}
	b.WriteString(`<span class="ticket-row-main"><strong>`)
	b.WriteString(html.EscapeString(row.TemplateName))
	b.WriteString(`</strong><span class="muted">`)
	b.WriteString(html.EscapeString(row.StoreCode))
	if row.EmployeeID != "" {
		b.WriteString(` &middot; `)
		b.WriteString(html.EscapeString(row.EmployeeID))
	}
	b.WriteString(`</span></span>`)
	b.WriteString(`<span class="ticket-row-side">`)
	writeStatusBadge(b, row.Status)
	b.WriteString(`<span class="muted">`)
	b.WriteString(html.EscapeString(row.CreatedAt))
	b.WriteString(`</span></span>`)
	b.WriteString(`</button></form>`)
}

func writeStatusBadge(b *strings.Builder, status string) {
	class := "badge"
	switch status {
	case workflow.StatusApproved:
		class += " badge-approved"
	case workflow.StatusRejected:
		class += " badge-rejected"
	default:
		class += " badge-pending"
	}
	b.WriteString(`<span class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(status))
	b.WriteString(`</span>`)
}

func writeDetail(b *strings.Builder, d *DetailData) {
	b.WriteString(`<div class="form-header"><form method="POST" action="/tickets/`)
	b.WriteString(html.EscapeString(d.ID))
	b.WriteString(`/back"><button type="submit" class="link-button">&larr; Back</button></form><h2>`)
	b.WriteString(html.EscapeString(d.TemplateName))
	b.WriteString(`</h2></div>`)

	b.WriteString(`<div class="detail-card"><span class="muted">Status</span>`)
	writeStatusBadge(b, d.Status)
	b.WriteString(`</div>`)
	writeDetailField(b, "Store", d.StoreCode)
	writeDetailField(b, "Submitted By", d.EmployeeID)
	writeDetailField(b, "Submitted At", d.CreatedAt)

	switch v := d.Details.(type) {
	case workflow.CountCorrection:
		writeDetailField(b, "Product", v.ProductName+" ("+v.ProductCode+")")
		writeDetailField(b, "Current MRP", fmt.Sprintf("%.2f", v.ProductMRP))
		writeDetailField(b, "New Count", fmt.Sprintf("%d", v.NewCount))
	case workflow.Markdown:
		writeDetailField(b, "Product", v.ProductName+" ("+v.ProductCode+")")
		writeDetailField(b, "Current MRP", fmt.Sprintf("%.2f", v.ProductMRP))
		writeDetailField(b, "New MRP", fmt.Sprintf("%.2f", v.NewMRP))
	case workflow.Imprest:
		writeDetailField(b, "Expense", v.Title)
		writeDetailField(b, "Amount", fmt.Sprintf("%.2f", v.Amount))
		writeDetailField(b, "Purpose", v.Purpose)
	}

	if d.Description != "" {
		writeDetailField(b, "Description", d.Description)
	}
	if d.DecisionComment != "" {
		writeDetailField(b, "Decision Comment", d.DecisionComment)
	}

	if len(d.ImageRefs) > 0 {
		b.WriteString(`<div class="detail-photos">`)
		for _, ref := range d.ImageRefs {
			b.WriteString(`<img src="/attachments/`)
			b.WriteString(html.EscapeString(ref))
			b.WriteString(`" alt="ticket photo" loading="lazy">`)
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(`<div class="detail-barcode"><img src="/tickets/`)
	b.WriteString(html.EscapeString(d.ID))
	b.WriteString(`/barcode.png" alt="ticket barcode"></div>`)

	if d.IsApprovalView && d.Status == workflow.StatusPending {
		b.WriteString(`<form method="POST" action="/tickets/`)
		b.WriteString(html.EscapeString(d.ID))
		b.WriteString(`/decision" class="decision-form">`)
		b.WriteString(`<label>Comment<textarea name="comment" rows="2" placeholder="Required when rejecting"></textarea></label>`)
		b.WriteString(`<div class="decision-buttons">`)
		b.WriteString(`<button type="submit" name="decision" value="Rejected" class="destructive">Reject</button>`)
		b.WriteString(`<button type="submit" name="decision" value="Approved" class="primary">Approve</button>`)
		b.WriteString(`</div></form>`)
	}
}

func writeDetailField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(`<div class="detail-card"><span class="muted">`)
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</span><span>`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`</span></div>`)
}

func templateIcon(name string) string {
	if svg, ok := templateIcons[name]; ok {
		return svg
	}
	return templateIcons["cube"]
}

var templateIcons = map[string]string{
	"tag":   `<svg xmlns="http://www.w3.org/2000/svg" width="28" height="28" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M12.586 2.586A2 2 0 0 0 11.172 2H4a2 2 0 0 0-2 2v7.172a2 2 0 0 0 .586 1.414l8.704 8.704a2.426 2.426 0 0 0 3.42 0l6.58-6.58a2.426 2.426 0 0 0 0-3.42z"/><circle cx="7.5" cy="7.5" r=".5" fill="currentColor"/></svg>`,
	"check": `<svg xmlns="http://www.w3.org/2000/svg" width="28" height="28" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M22 11.08V12a10 10 0 1 1-5.93-9.14"/><polyline points="22 4 12 14.01 9 11.01"/></svg>`,
	"truck": `<svg xmlns="http://www.w3.org/2000/svg" width="28" height="28" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M5 18H3c-.6 0-1-.4-1-1V7c0-.6.4-1 1-1h10c.6 0 1 .4 1 1v11"/><path d="M14 9h4l4 4v4c0 .6-.4 1-1 1h-2"/><circle cx="7" cy="18" r="2"/><circle cx="17" cy="18" r="2"/></svg>`,
	"list":  `<svg xmlns="http://www.w3.org/2000/svg" width="28" height="28" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><line x1="8" x2="21" y1="6" y2="6"/><line x1="8" x2="21" y1="12" y2="12"/><line x1="8" x2="21" y1="18" y2="18"/><line x1="3" x2="3.01" y1="6" y2="6"/><line x1="3" x2="3.01" y1="12" y2="12"/><line x1="3" x2="3.01" y1="18" y2="18"/></svg>`,
	"cube":  `<svg xmlns="http://www.w3.org/2000/svg" width="28" height="28" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="m21 16-9 5-9-5V8l9-5 9 5z"/><path d="m3.3 7 8.7 5 8.7-5"/><path d="M12 22V12"/></svg>`,
}

const productLookupScript = `<script>
(function () {
  var search = document.getElementById("product-search");
  if (!search) return;

  var options = document.getElementById("product-options");
  var nameField = document.getElementById("product-name");
  var mrpField = document.getElementById("product-mrp");
  var summary = document.getElementById("product-summary");
  var byCode = {};

  search.addEventListener("input", function () {
    var q = search.value.trim();
    if (byCode[q]) {
      var p = byCode[q];
      nameField.value = p.name;
      mrpField.value = p.mrp;
      summary.textContent = p.name + " (MRP " + p.mrp.toFixed(2) + ")";
      return;
    }
    nameField.value = "";
    mrpField.value = "";
    summary.textContent = "";
    if (q.length < 2) return;

    fetch("/products/search?q=" + encodeURIComponent(q))
      .then(function (resp) { return resp.json(); })
      .then(function (products) {
        byCode = {};
        options.innerHTML = "";
        products.forEach(function (p) {
          byCode[p.code] = p;
          var opt = document.createElement("option");
          opt.value = p.code;
          opt.label = p.name;
          options.appendChild(opt);
        });
      })
      .catch(function () {});
  });
})();
</script>`
