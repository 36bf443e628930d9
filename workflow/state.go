package workflow

// Tabs of the workflow shell.
const (
	TabSubmit    = "submit"
	TabMyTickets = "my-tickets"
	TabApprovals = "approvals"
)

// Navigation modes derived from State.
const (
	ModeBrowsing      = "browsing"
	ModeBulkSelecting = "bulk-selecting"
	ModeViewingDetail = "viewing-detail"
)

// State is the per-session workflow state: active tab, selected template,
// viewed ticket, bulk-selection set. It owns no ticket data and performs no
// rendering, so every transition is unit-testable in isolation.
type State struct {
	ActiveTab        string
	SelectedTemplate string
	ViewingTicketID  string
	BulkMode         bool
	Selected         map[string]struct{}
}

// NewState returns the initial state: submit tab, nothing selected.
func NewState() *State {
	return &State{ActiveTab: TabSubmit, Selected: make(map[string]struct{})}
}

// Mode reports the current navigation mode.
func (s *State) Mode() string {
	switch {
	case s.ViewingTicketID != "":
		return ModeViewingDetail
	case s.BulkMode:
		return ModeBulkSelecting
	default:
		return ModeBrowsing
	}
}

// SetActiveTab switches the shell tab. Navigating away always discards
// transient selection and detail context, regardless of prior mode.
func (s *State) SetActiveTab(tab string) {
	if tab != TabSubmit && tab != TabMyTickets && tab != TabApprovals {
		return
	}
	s.ActiveTab = tab
	s.SelectedTemplate = ""
	s.ViewingTicketID = ""
	s.BulkMode = false
	s.Selected = make(map[string]struct{})
}

// SelectTemplate picks a template on the submit tab. Unknown names are a
// no-op; the picker only ever offers catalog entries.
func (s *State) SelectTemplate(name string) {
	if !KnownTemplate(name) {
		return
	}
	s.SelectedTemplate = name
}

// ClearTemplate returns from the form to the template grid.
func (s *State) ClearTemplate() {
	s.SelectedTemplate = ""
}

// ViewTicket opens the detail view for a ticket. In bulk-selection mode
// ticket clicks toggle selection instead, so this is a no-op there.
func (s *State) ViewTicket(id string) {
	if s.BulkMode || id == "" {
		return
	}
	s.ViewingTicketID = id
}

// CloseTicket returns from the detail view to the list.
func (s *State) CloseTicket() {
	s.ViewingTicketID = ""
}

// EnterBulkMode starts multi-selection on the approvals list.
func (s *State) EnterBulkMode() {
	s.BulkMode = true
	s.ViewingTicketID = ""
}

// ExitBulkMode cancels multi-selection and clears the selection set.
func (s *State) ExitBulkMode() {
	s.BulkMode = false
	s.Selected = make(map[string]struct{})
}

// ToggleSelection adds the id to the selection set if absent, removes it if
// present. Toggling the same id twice restores the prior set.
func (s *State) ToggleSelection(id string) {
	if id == "" {
		return
	}
	if s.Selected == nil {
		s.Selected = make(map[string]struct{})
	}
	if _, ok := s.Selected[id]; ok {
		delete(s.Selected, id)
		return
	}
	s.Selected[id] = struct{}{}
}

// IsSelected reports whether id is in the selection set.
func (s *State) IsSelected(id string) bool {
	_, ok := s.Selected[id]
	return ok
}

// SelectedIDs returns the selection set as a slice, order unspecified.
func (s *State) SelectedIDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	return ids
}
