package workflow

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"storeops/models"
)

// MissingFieldError names every template-mandatory field absent from a
// submission. The submit handler surfaces it verbatim and skips mutation.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Details is the template-specific payload of a ticket, as a tagged variant:
// exactly one concrete type applies per template, so the "one field group
// populated" invariant holds by construction.
type Details interface {
	// Apply writes the payload onto the ticket row.
	Apply(t *models.Ticket)
}

// CountCorrection carries the payload of a Count Correction ticket.
type CountCorrection struct {
	ProductCode string
	ProductName string
	ProductMRP  float64
	NewCount    int64
}

func (d CountCorrection) Apply(t *models.Ticket) {
	t.ProductCode = d.ProductCode
	t.ProductName = d.ProductName
	t.ProductMRP = d.ProductMRP
	t.NewCount = d.NewCount
}

// Markdown carries the payload of a Markdown Request ticket.
type Markdown struct {
	ProductCode string
	ProductName string
	ProductMRP  float64
	NewMRP      float64
}

func (d Markdown) Apply(t *models.Ticket) {
	t.ProductCode = d.ProductCode
	t.ProductName = d.ProductName
	t.ProductMRP = d.ProductMRP
	t.NewMRP = d.NewMRP
}

// Imprest carries the payload of an Imprest Submission ticket.
type Imprest struct {
	Title   string
	Amount  float64
	Purpose string
}

func (d Imprest) Apply(t *models.Ticket) {
	t.ExpenseTitle = d.Title
	t.ExpenseAmount = d.Amount
	t.ExpensePurpose = d.Purpose
}

// Plain is the payload of templates with no extra fields beyond the
// optional description.
type Plain struct{}

func (Plain) Apply(*models.Ticket) {}

// ParseDetails validates and shapes the template-specific form fields.
//
// Field-presence policy: Count Correction needs a selected product and a
// numeric new count; Markdown Request a selected product and a numeric new
// MRP; Imprest Submission a title, a numeric amount and a purpose; all
// other templates need nothing extra.
func ParseDetails(template string, form url.Values) (Details, error) {
	get := func(name string) string { return strings.TrimSpace(form.Get(name)) }

	switch template {
	case TemplateCountCorrection:
		var missing []string
		code := get("product_code")
		if code == "" {
			missing = append(missing, "product")
		}
		rawCount := get("new_count")
		if rawCount == "" {
			missing = append(missing, "new count")
		}
		if len(missing) > 0 {
			return nil, &MissingFieldError{Fields: missing}
		}
		count, err := strconv.ParseInt(rawCount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("new count must be a whole number")
		}
		mrp, _ := strconv.ParseFloat(get("product_mrp"), 64)
		return CountCorrection{
			ProductCode: code,
			ProductName: get("product_name"),
			ProductMRP:  mrp,
			NewCount:    count,
		}, nil

	case TemplateMarkdownRequest:
		var missing []string
		code := get("product_code")
		if code == "" {
			missing = append(missing, "product")
		}
		rawMRP := get("new_mrp")
		if rawMRP == "" {
			missing = append(missing, "new MRP")
		}
		if len(missing) > 0 {
			return nil, &MissingFieldError{Fields: missing}
		}
		newMRP, err := strconv.ParseFloat(rawMRP, 64)
		if err != nil {
			return nil, fmt.Errorf("new MRP must be a number")
		}
		mrp, _ := strconv.ParseFloat(get("product_mrp"), 64)
		return Markdown{
			ProductCode: code,
			ProductName: get("product_name"),
			ProductMRP:  mrp,
			NewMRP:      newMRP,
		}, nil

	case TemplateImprestSubmission:
		var missing []string
		title := get("expense_title")
		if title == "" {
			missing = append(missing, "expense title")
		}
		rawAmount := get("expense_amount")
		if rawAmount == "" {
			missing = append(missing, "amount")
		}
		purpose := get("expense_purpose")
		if purpose == "" {
			missing = append(missing, "purpose")
		}
		if len(missing) > 0 {
			return nil, &MissingFieldError{Fields: missing}
		}
		amount, err := strconv.ParseFloat(rawAmount, 64)
		if err != nil {
			return nil, fmt.Errorf("amount must be a number")
		}
		return Imprest{Title: title, Amount: amount, Purpose: purpose}, nil

	default:
		if !KnownTemplate(template) {
			return nil, fmt.Errorf("unknown ticket template: %s", template)
		}
		return Plain{}, nil
	}
}

// DetailsOf reconstructs the tagged variant from a stored ticket row, for
// detail rendering and exports.
func DetailsOf(t models.Ticket) Details {
	switch t.TemplateName {
	case TemplateCountCorrection:
		return CountCorrection{ProductCode: t.ProductCode, ProductName: t.ProductName, ProductMRP: t.ProductMRP, NewCount: t.NewCount}
	case TemplateMarkdownRequest:
		return Markdown{ProductCode: t.ProductCode, ProductName: t.ProductName, ProductMRP: t.ProductMRP, NewMRP: t.NewMRP}
	case TemplateImprestSubmission:
		return Imprest{Title: t.ExpenseTitle, Amount: t.ExpenseAmount, Purpose: t.ExpensePurpose}
	default:
		return Plain{}
	}
}
