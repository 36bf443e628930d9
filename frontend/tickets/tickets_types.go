package tickets

import (
	"storeops/frontend/shared/toast"
	"storeops/workflow"
)

// ImageInput is one uploaded photo, pre-resolution.
type ImageInput struct {
	Blob     []byte
	MIMEType string
	FileName string
}

// TicketInput is a validated submission ready for insertion.
type TicketInput struct {
	TemplateName string
	Description  string
	Details      workflow.Details
	Images       []ImageInput
}

// ListFilter selects the ticket rows a tab shows. Both views order by
// newest submission first.
type ListFilter struct {
	SessionToken string
	PendingOnly  bool
}

// TicketRow is one entry of the list views.
type TicketRow struct {
	ID           string
	TemplateName string
	StoreCode    string
	EmployeeID   string
	Status       string
	CreatedAt    string
	Selected     bool
}

// DetailData feeds the ticket detail view.
type DetailData struct {
	ID              string
	TemplateName    string
	StoreCode       string
	EmployeeID      string
	Description     string
	Status          string
	CreatedAt       string
	Details         workflow.Details
	DecisionComment string
	ImageRefs       []string
	IsApprovalView  bool
}

// PageData feeds the workflow shell.
type PageData struct {
	State     workflow.State
	Templates []workflow.Template
	Rows      []TicketRow
	Detail    *DetailData
	Toast     *toast.Toast
}
