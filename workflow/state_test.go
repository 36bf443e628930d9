package workflow

import "testing"

func TestSetActiveTabClearsTransientContext(t *testing.T) {
	s := NewState()
	s.SetActiveTab(TabApprovals)
	s.EnterBulkMode()
	s.ToggleSelection("a")
	s.ToggleSelection("b")

	s.SetActiveTab(TabMyTickets)

	if s.ActiveTab != TabMyTickets {
		t.Fatalf("expected my-tickets tab, got %q", s.ActiveTab)
	}
	if s.BulkMode {
		t.Fatalf("expected bulk mode off after tab change")
	}
	if len(s.Selected) != 0 {
		t.Fatalf("expected empty selection after tab change, got %d", len(s.Selected))
	}
	if s.ViewingTicketID != "" {
		t.Fatalf("expected viewed ticket cleared after tab change")
	}
}

func TestSetActiveTabIgnoresUnknownTab(t *testing.T) {
	s := NewState()
	s.SetActiveTab("bogus")
	if s.ActiveTab != TabSubmit {
		t.Fatalf("expected submit tab to survive unknown tab, got %q", s.ActiveTab)
	}
}

func TestSelectTemplateIgnoresUnknownName(t *testing.T) {
	s := NewState()
	s.SelectTemplate("Night Shift Request")
	if s.SelectedTemplate != "" {
		t.Fatalf("expected no template selected, got %q", s.SelectedTemplate)
	}
	s.SelectTemplate(TemplateImprestSubmission)
	if s.SelectedTemplate != TemplateImprestSubmission {
		t.Fatalf("expected imprest template selected, got %q", s.SelectedTemplate)
	}
}

func TestViewTicketIsNoOpInBulkMode(t *testing.T) {
	s := NewState()
	s.SetActiveTab(TabApprovals)
	s.EnterBulkMode()
	s.ViewTicket("t1")
	if s.ViewingTicketID != "" {
		t.Fatalf("clicks in bulk mode must not open detail view")
	}
	s.ExitBulkMode()
	s.ViewTicket("t1")
	if s.ViewingTicketID != "t1" {
		t.Fatalf("expected detail view for t1, got %q", s.ViewingTicketID)
	}
}

func TestToggleSelectionIsItsOwnInverse(t *testing.T) {
	s := NewState()
	s.ToggleSelection("x")
	s.ToggleSelection("y")
	if !s.IsSelected("x") || !s.IsSelected("y") {
		t.Fatalf("expected x and y selected")
	}

	s.ToggleSelection("x")
	s.ToggleSelection("x")
	if !s.IsSelected("x") {
		t.Fatalf("double toggle must restore prior membership")
	}
	if len(s.SelectedIDs()) != 2 {
		t.Fatalf("expected 2 selected, got %d", len(s.SelectedIDs()))
	}
}

func TestModeTransitions(t *testing.T) {
	s := NewState()
	if s.Mode() != ModeBrowsing {
		t.Fatalf("initial mode should be browsing, got %q", s.Mode())
	}

	s.ViewTicket("t1")
	if s.Mode() != ModeViewingDetail {
		t.Fatalf("expected viewing-detail, got %q", s.Mode())
	}
	s.CloseTicket()
	if s.Mode() != ModeBrowsing {
		t.Fatalf("expected browsing after back, got %q", s.Mode())
	}

	s.EnterBulkMode()
	if s.Mode() != ModeBulkSelecting {
		t.Fatalf("expected bulk-selecting, got %q", s.Mode())
	}
	s.ExitBulkMode()
	if s.Mode() != ModeBrowsing {
		t.Fatalf("expected browsing after cancel, got %q", s.Mode())
	}
	if len(s.Selected) != 0 {
		t.Fatalf("cancel must clear the selection set")
	}
}

func TestEnterBulkModeClosesDetailView(t *testing.T) {
	s := NewState()
	s.ViewTicket("t1")
	s.EnterBulkMode()
	if s.ViewingTicketID != "" {
		t.Fatalf("bulk mode must close the detail view")
	}
}
