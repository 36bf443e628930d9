package tickets

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"storeops/infrastructure/audit"
	"storeops/infrastructure/sqlite"
	"storeops/models"
	"storeops/workflow"
)

var testDBSeq atomic.Int64

func openTicketsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenMemoryDB(fmt.Sprintf("tickets-test-%d", testDBSeq.Add(1)))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlite.ApplyMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func testSession() models.Session {
	return models.Session{Token: "tok-1", StoreCode: "ST-042", EmployeeID: "EMP-7", CreatedAt: time.Now()}
}

func mustCreate(t *testing.T, db *sqlite.DB, session models.Session, template string, details workflow.Details) models.Ticket {
	t.Helper()
	ticket, err := CreateTicket(context.Background(), db, audit.NewService(), session, TicketInput{
		TemplateName: template,
		Details:      details,
	})
	if err != nil {
		t.Fatalf("create %s ticket: %v", template, err)
	}
	return ticket
}

func TestCreateTicket_StartsPendingWithStamps(t *testing.T) {
	db := openTicketsTestDB(t)
	session := testSession()

	details, err := workflow.ParseDetails(workflow.TemplateCountCorrection, url.Values{
		"product_code": {"SKU12345"},
		"product_name": {"Basmati Rice"},
		"product_mrp":  {"120"},
		"new_count":    {"8"},
	})
	if err != nil {
		t.Fatalf("parse details: %v", err)
	}

	ticket, err := CreateTicket(context.Background(), db, audit.NewService(), session, TicketInput{
		TemplateName: workflow.TemplateCountCorrection,
		Description:  "found extra stock in the back room",
		Details:      details,
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	if ticket.ID == "" {
		t.Fatalf("expected generated id")
	}
	if ticket.Status != workflow.StatusPending {
		t.Fatalf("expected status Pending, got %q", ticket.Status)
	}
	if ticket.StoreCode != "ST-042" || ticket.EmployeeID != "EMP-7" {
		t.Fatalf("expected session profile stamped onto ticket, got %q/%q", ticket.StoreCode, ticket.EmployeeID)
	}
	if ticket.CreatedAt.IsZero() {
		t.Fatalf("expected created_at stamp")
	}
	if ticket.NewCount != 8 {
		t.Fatalf("expected coerced new count 8, got %d", ticket.NewCount)
	}

	stored, _, err := LoadTicket(context.Background(), db, ticket.ID)
	if err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if stored.ProductCode != "SKU12345" || stored.NewCount != 8 {
		t.Fatalf("stored payload mismatch: %+v", stored)
	}
	if stored.NewMRP != 0 || stored.ExpenseAmount != 0 {
		t.Fatalf("expected other field groups untouched: %+v", stored)
	}
}

func TestCreateTicket_ImprestPayload(t *testing.T) {
	db := openTicketsTestDB(t)

	details, err := workflow.ParseDetails(workflow.TemplateImprestSubmission, url.Values{
		"expense_title":   {"Office Supplies"},
		"expense_amount":  {"500"},
		"expense_purpose": {"stationery"},
	})
	if err != nil {
		t.Fatalf("parse details: %v", err)
	}

	ticket := mustCreate(t, db, testSession(), workflow.TemplateImprestSubmission, details)

	stored, _, err := LoadTicket(context.Background(), db, ticket.ID)
	if err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if stored.ExpenseTitle != "Office Supplies" || stored.ExpenseAmount != 500 || stored.ExpensePurpose != "stationery" {
		t.Fatalf("imprest payload mismatch: %+v", stored)
	}
	if stored.ProductCode != "" || stored.NewCount != 0 {
		t.Fatalf("expected product group empty on imprest ticket: %+v", stored)
	}
}

func TestCreateTicket_StoresImagesInOrder(t *testing.T) {
	db := openTicketsTestDB(t)

	ticket, err := CreateTicket(context.Background(), db, audit.NewService(), testSession(), TicketInput{
		TemplateName: workflow.TemplateOtherRequest,
		Description:  "broken shelf on aisle 4",
		Details:      workflow.Plain{},
		Images: []ImageInput{
			{Blob: []byte("first image bytes"), MIMEType: "image/jpeg", FileName: "one.jpg"},
			{Blob: []byte("second image bytes"), MIMEType: "image/png", FileName: "two.png"},
		},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	_, refs, err := LoadTicket(context.Background(), db, ticket.ID)
	if err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 image refs, got %d", len(refs))
	}
	if refs[0] == refs[1] {
		t.Fatalf("expected distinct refs for distinct blobs")
	}
}

func TestListTickets_NewestFirstAndFiltered(t *testing.T) {
	db := openTicketsTestDB(t)
	mine := testSession()
	other := models.Session{Token: "tok-2", StoreCode: "ST-099"}

	first := mustCreate(t, db, mine, workflow.TemplateOtherRequest, workflow.Plain{})
	second := mustCreate(t, db, mine, workflow.TemplateConsumablesRequest, workflow.Plain{})
	theirs := mustCreate(t, db, other, workflow.TemplateOtherRequest, workflow.Plain{})

	list, err := ListTickets(context.Background(), db, ListFilter{SessionToken: mine.Token})
	if err != nil {
		t.Fatalf("list my tickets: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 tickets for session, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest-first ordering, got %s then %s", list[0].ID, list[1].ID)
	}

	pending, err := ListTickets(context.Background(), db, ListFilter{PendingOnly: true})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending tickets, got %d", len(pending))
	}

	if err := DecideTicket(context.Background(), db, audit.NewService(), mine.Token, theirs.ID, workflow.StatusApproved, ""); err != nil {
		t.Fatalf("approve ticket: %v", err)
	}
	pending, err = ListTickets(context.Background(), db, ListFilter{PendingOnly: true})
	if err != nil {
		t.Fatalf("list pending after approval: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected approved ticket to leave the pending list, got %d rows", len(pending))
	}
}

func TestDecideTicket_ApproveAndReject(t *testing.T) {
	db := openTicketsTestDB(t)
	session := testSession()

	approve := mustCreate(t, db, session, workflow.TemplateOtherRequest, workflow.Plain{})
	reject := mustCreate(t, db, session, workflow.TemplateOtherRequest, workflow.Plain{})

	if err := DecideTicket(context.Background(), db, audit.NewService(), session.Token, approve.ID, workflow.StatusApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	stored, _, err := LoadTicket(context.Background(), db, approve.ID)
	if err != nil {
		t.Fatalf("load approved: %v", err)
	}
	if stored.Status != workflow.StatusApproved {
		t.Fatalf("expected Approved, got %q", stored.Status)
	}
	if stored.DecidedAt == nil {
		t.Fatalf("expected decided_at stamp")
	}

	if err := DecideTicket(context.Background(), db, audit.NewService(), session.Token, reject.ID, workflow.StatusRejected, "count does not match the shelf"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	stored, _, err = LoadTicket(context.Background(), db, reject.ID)
	if err != nil {
		t.Fatalf("load rejected: %v", err)
	}
	if stored.Status != workflow.StatusRejected {
		t.Fatalf("expected Rejected, got %q", stored.Status)
	}
	if stored.DecisionComment != "count does not match the shelf" {
		t.Fatalf("expected decision comment stored, got %q", stored.DecisionComment)
	}
}

func TestDecideTicket_DecisionsAreTerminal(t *testing.T) {
	db := openTicketsTestDB(t)
	session := testSession()

	ticket := mustCreate(t, db, session, workflow.TemplateOtherRequest, workflow.Plain{})
	if err := DecideTicket(context.Background(), db, audit.NewService(), session.Token, ticket.ID, workflow.StatusApproved, ""); err != nil {
		t.Fatalf("first decision: %v", err)
	}

	if err := DecideTicket(context.Background(), db, audit.NewService(), session.Token, ticket.ID, workflow.StatusRejected, "changed my mind"); err == nil {
		t.Fatalf("expected second decision to fail")
	}

	stored, _, err := LoadTicket(context.Background(), db, ticket.ID)
	if err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if stored.Status != workflow.StatusApproved {
		t.Fatalf("expected first decision to stick, got %q", stored.Status)
	}
	if stored.DecisionComment != "" {
		t.Fatalf("expected failed decision to leave no comment, got %q", stored.DecisionComment)
	}
}

func TestBulkApprove_OnlyTouchesSelectedPending(t *testing.T) {
	db := openTicketsTestDB(t)
	session := testSession()

	a := mustCreate(t, db, session, workflow.TemplateOtherRequest, workflow.Plain{})
	b := mustCreate(t, db, session, workflow.TemplateConsumablesRequest, workflow.Plain{})
	untouched := mustCreate(t, db, session, workflow.TemplateInventoryAdjustment, workflow.Plain{})
	decided := mustCreate(t, db, session, workflow.TemplateOtherRequest, workflow.Plain{})
	if err := DecideTicket(context.Background(), db, audit.NewService(), session.Token, decided.ID, workflow.StatusRejected, "not needed"); err != nil {
		t.Fatalf("pre-reject: %v", err)
	}

	approved, err := BulkApprove(context.Background(), db, audit.NewService(), session.Token, []string{a.ID, b.ID, decided.ID})
	if err != nil {
		t.Fatalf("bulk approve: %v", err)
	}
	if approved != 2 {
		t.Fatalf("expected 2 approvals, got %d", approved)
	}

	for _, id := range []string{a.ID, b.ID} {
		stored, _, err := LoadTicket(context.Background(), db, id)
		if err != nil {
			t.Fatalf("load %s: %v", id, err)
		}
		if stored.Status != workflow.StatusApproved {
			t.Fatalf("expected %s approved, got %q", id, stored.Status)
		}
	}

	stored, _, err := LoadTicket(context.Background(), db, untouched.ID)
	if err != nil {
		t.Fatalf("load untouched: %v", err)
	}
	if stored.Status != workflow.StatusPending {
		t.Fatalf("expected unselected ticket to stay Pending, got %q", stored.Status)
	}

	stored, _, err = LoadTicket(context.Background(), db, decided.ID)
	if err != nil {
		t.Fatalf("load decided: %v", err)
	}
	if stored.Status != workflow.StatusRejected {
		t.Fatalf("expected rejected ticket to stay Rejected, got %q", stored.Status)
	}
}

func TestBulkApprove_EmptySelectionIsNoOp(t *testing.T) {
	db := openTicketsTestDB(t)

	approved, err := BulkApprove(context.Background(), db, audit.NewService(), "tok-1", nil)
	if err != nil {
		t.Fatalf("bulk approve: %v", err)
	}
	if approved != 0 {
		t.Fatalf("expected 0 approvals, got %d", approved)
	}
}
