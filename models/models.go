package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ticket is a store-operations request awaiting or having received a decision.
//
// Exactly one template-specific field group is populated, matching
// TemplateName; workflow.Details enforces that before a row is written.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets,alias:t"`

	ID           string `bun:"id,pk"`
	SessionToken string `bun:"session_token,notnull"`
	TemplateName string `bun:"template_name,notnull"`
	StoreCode    string `bun:"store_code"`
	EmployeeID   string `bun:"employee_id"`
	Description  string `bun:"description"`
	Status       string `bun:"status,notnull"`

	// Count Correction / Markdown Request
	ProductCode string  `bun:"product_code"`
	ProductName string  `bun:"product_name"`
	ProductMRP  float64 `bun:"product_mrp"`
	NewCount    int64   `bun:"new_count"`
	NewMRP      float64 `bun:"new_mrp"`

	// Imprest Submission
	ExpenseTitle   string  `bun:"expense_title"`
	ExpenseAmount  float64 `bun:"expense_amount"`
	ExpensePurpose string  `bun:"expense_purpose"`

	DecisionComment string     `bun:"decision_comment"`
	DecidedAt       *time.Time `bun:"decided_at"`
	CreatedAt       time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}

// TicketImage links an attachment reference to a ticket, in upload order.
type TicketImage struct {
	bun.BaseModel `bun:"table:ticket_images,alias:ti"`

	ID       int64  `bun:"id,pk,autoincrement"`
	TicketID string `bun:"ticket_id,notnull"`
	Ref      string `bun:"ref,notnull"`
	Position int    `bun:"position,notnull"`
}

// Product is a catalog row used by the product lookup on the
// Count Correction and Markdown Request forms.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	Code        string  `bun:"code,pk"`
	Name        string  `bun:"name,notnull"`
	Description string  `bun:"description"`
	ImageRef    string  `bun:"image_ref"`
	MRP         float64 `bun:"mrp"`
	RRP         float64 `bun:"rrp"`
}

// Attachment is a content-addressed uploaded image. Ref is the
// blake2b-256 hex digest of Blob.
type Attachment struct {
	bun.BaseModel `bun:"table:attachments,alias:a"`

	Ref       string    `bun:"ref,pk"`
	Blob      []byte    `bun:"blob,notnull"`
	MIME      string    `bun:"mime,notnull"`
	Name      string    `bun:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// AuditLog captures immutable change history for ticket operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID           int64     `bun:"id,pk,autoincrement"`
	SessionToken string    `bun:"session_token,notnull"`
	Action       string    `bun:"action,notnull"`
	EntityType   string    `bun:"entity_type,notnull"`
	EntityID     string    `bun:"entity_id,notnull"`
	BeforeJSON   string    `bun:"before_json"`
	AfterJSON    string    `bun:"after_json"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Session is the anonymous per-browser session. It is never persisted;
// the cache package owns the live set.
type Session struct {
	Token      string
	StoreCode  string
	EmployeeID string
	CreatedAt  time.Time
}
