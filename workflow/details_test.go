package workflow

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"storeops/models"
)

func TestParseDetailsCountCorrectionRequiresProduct(t *testing.T) {
	form := url.Values{}
	form.Set("new_count", "8")

	_, err := ParseDetails(TemplateCountCorrection, form)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if len(missing.Fields) != 1 || missing.Fields[0] != "product" {
		t.Fatalf("expected missing product, got %v", missing.Fields)
	}
}

func TestParseDetailsCountCorrectionCoercesCount(t *testing.T) {
	form := url.Values{}
	form.Set("product_code", "SKU12345")
	form.Set("product_name", "Shelf Stock Item")
	form.Set("new_count", "8")

	details, err := ParseDetails(TemplateCountCorrection, form)
	if err != nil {
		t.Fatalf("parse details: %v", err)
	}
	cc, ok := details.(CountCorrection)
	if !ok {
		t.Fatalf("expected CountCorrection, got %T", details)
	}
	if cc.NewCount != 8 {
		t.Fatalf("expected numeric count 8, got %d", cc.NewCount)
	}

	var ticket models.Ticket
	details.Apply(&ticket)
	if ticket.NewCount != 8 || ticket.ProductCode != "SKU12345" {
		t.Fatalf("apply did not populate count-correction group: %+v", ticket)
	}
	if ticket.ExpenseTitle != "" || ticket.NewMRP != 0 {
		t.Fatalf("apply must not touch other field groups: %+v", ticket)
	}
}

func TestParseDetailsRejectsNonNumericCount(t *testing.T) {
	form := url.Values{}
	form.Set("product_code", "SKU12345")
	form.Set("new_count", "eight")

	_, err := ParseDetails(TemplateCountCorrection, form)
	if err == nil || !strings.Contains(err.Error(), "whole number") {
		t.Fatalf("expected numeric validation error, got %v", err)
	}
}

func TestParseDetailsImprestNamesEveryMissingField(t *testing.T) {
	_, err := ParseDetails(TemplateImprestSubmission, url.Values{})
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if len(missing.Fields) != 3 {
		t.Fatalf("expected 3 missing fields, got %v", missing.Fields)
	}
}

func TestParseDetailsImprestScenario(t *testing.T) {
	form := url.Values{}
	form.Set("expense_title", "Office Supplies")
	form.Set("expense_amount", "500")
	form.Set("expense_purpose", "stationery")

	details, err := ParseDetails(TemplateImprestSubmission, form)
	if err != nil {
		t.Fatalf("parse details: %v", err)
	}
	imp, ok := details.(Imprest)
	if !ok {
		t.Fatalf("expected Imprest, got %T", details)
	}
	if imp.Title != "Office Supplies" || imp.Amount != 500 || imp.Purpose != "stationery" {
		t.Fatalf("unexpected imprest payload: %+v", imp)
	}
}

func TestParseDetailsPlainTemplatesNeedNothing(t *testing.T) {
	for _, name := range []string{TemplateConsumablesRequest, TemplateInventoryAdjustment, TemplateOtherRequest} {
		details, err := ParseDetails(name, url.Values{})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, ok := details.(Plain); !ok {
			t.Fatalf("%s: expected Plain details, got %T", name, details)
		}
	}
}

func TestParseDetailsUnknownTemplate(t *testing.T) {
	if _, err := ParseDetails("Night Shift Request", url.Values{}); err == nil {
		t.Fatalf("expected unknown template error")
	}
}

func TestValidateDecision(t *testing.T) {
	if err := ValidateDecision(StatusRejected, "", true); !errors.Is(err, ErrMissingRejectionComment) {
		t.Fatalf("expected missing rejection comment, got %v", err)
	}
	if err := ValidateDecision(StatusRejected, "out of policy", true); err != nil {
		t.Fatalf("expected rejection with comment to pass, got %v", err)
	}
	if err := ValidateDecision(StatusRejected, "", false); err != nil {
		t.Fatalf("comment is only mandatory in the approval view, got %v", err)
	}
	if err := ValidateDecision(StatusApproved, "", true); err != nil {
		t.Fatalf("approval needs no comment, got %v", err)
	}
	if err := ValidateDecision(StatusPending, "", true); err == nil {
		t.Fatalf("expected invalid decision status error")
	}
}

func TestCanTransitionIsTerminalAfterDecision(t *testing.T) {
	if !CanTransition(StatusPending, StatusApproved) || !CanTransition(StatusPending, StatusRejected) {
		t.Fatalf("pending must allow both decisions")
	}
	for _, from := range []string{StatusApproved, StatusRejected} {
		for _, to := range []string{StatusPending, StatusApproved, StatusRejected} {
			if CanTransition(from, to) {
				t.Fatalf("decision from %s to %s must be forbidden", from, to)
			}
		}
	}
}
