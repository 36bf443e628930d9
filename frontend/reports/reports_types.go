package reports

// StatusCount is one slice of the status breakdown.
type StatusCount struct {
	Status string `bun:"status"`
	Count  int64  `bun:"count"`
}

// TemplateCount is one slice of the per-template breakdown.
type TemplateCount struct {
	TemplateName string `bun:"template_name"`
	Count        int64  `bun:"count"`
}

// ExportRow is one ticket line of the CSV and PDF exports.
type ExportRow struct {
	ID           string `bun:"id"`
	TemplateName string `bun:"template_name"`
	StoreCode    string `bun:"store_code"`
	EmployeeID   string `bun:"employee_id"`
	Status       string `bun:"status"`
	Detail       string `bun:"detail"`
	CreatedAt    string `bun:"created_at"`
	DecidedAt    string `bun:"decided_at"`
}

// PageData feeds the reports page.
type PageData struct {
	Total      int64
	ByStatus   []StatusCount
	ByTemplate []TemplateCount
}
