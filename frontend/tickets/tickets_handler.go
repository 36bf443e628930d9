package tickets

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"storeops/frontend/shared/context"
	"storeops/frontend/shared/html"
	"storeops/frontend/shared/toast"
	"storeops/infrastructure/audit"
	"storeops/infrastructure/cache"
	"storeops/infrastructure/sqlite"
	"storeops/models"
	"storeops/workflow"
)

// HomePageQueryHandler renders the workflow shell: tabs, template picker or
// form, ticket lists, or a ticket detail, all driven by the session state.
func HomePageQueryHandler(db *sqlite.DB, sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		state, ok := sessions.StateSnapshot(session.Token)
		if !ok {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}

		data := PageData{
			State:     state,
			Templates: workflow.Templates,
		}
		if t, ok := toast.Pop(w, r); ok {
			data.Toast = &t
		}

		if state.ViewingTicketID != "" {
			detail, err := loadDetailData(r, db, state)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					// Ticket vanished from under the detail view. Fall back
					// to the list instead of a dead screen.
					sessions.MutateState(session.Token, func(s *workflow.State) { s.CloseTicket() })
					http.Redirect(w, r, "/", http.StatusSeeOther)
					return
				}
				http.Error(w, "failed to load ticket", http.StatusInternalServerError)
				return
			}
			data.Detail = detail
		} else if state.ActiveTab != workflow.TabSubmit {
			rows, err := loadRows(r, db, session, state)
			if err != nil {
				http.Error(w, "failed to load tickets", http.StatusInternalServerError)
				return
			}
			data.Rows = rows
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := html.Shell("Home", "/", data.Toast, WorkflowPage(data))
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render page", http.StatusInternalServerError)
		}
	}
}

func loadRows(r *http.Request, db *sqlite.DB, session models.Session, state workflow.State) ([]TicketRow, error) {
	filter := ListFilter{}
	if state.ActiveTab == workflow.TabApprovals {
		filter.PendingOnly = true
	} else {
		filter.SessionToken = session.Token
	}
	list, err := ListTickets(r.Context(), db, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]TicketRow, 0, len(list))
	for _, t := range list {
		rows = append(rows, TicketRow{
			ID:           t.ID,
			TemplateName: t.TemplateName,
			StoreCode:    t.StoreCode,
			EmployeeID:   t.EmployeeID,
			Status:       t.Status,
			CreatedAt:    t.CreatedAt.Local().Format("02 Jan 15:04"),
			Selected:     state.IsSelected(t.ID),
		})
	}
	return rows, nil
}

func loadDetailData(r *http.Request, db *sqlite.DB, state workflow.State) (*DetailData, error) {
	ticket, refs, err := LoadTicket(r.Context(), db, state.ViewingTicketID)
	if err != nil {
		return nil, err
	}
	return &DetailData{
		ID:              ticket.ID,
		TemplateName:    ticket.TemplateName,
		StoreCode:       ticket.StoreCode,
		EmployeeID:      ticket.EmployeeID,
		Description:     ticket.Description,
		Status:          ticket.Status,
		CreatedAt:       ticket.CreatedAt.Local().Format("02 Jan 2006 15:04"),
		Details:         workflow.DetailsOf(ticket),
		DecisionComment: ticket.DecisionComment,
		ImageRefs:       refs,
		IsApprovalView:  state.ActiveTab == workflow.TabApprovals,
	}, nil
}

// SetTabCommandHandler switches the active tab and discards transient
// selection and detail context.
func SetTabCommandHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		session, _ := context.GetSessionFromContext(r.Context())
		tab := strings.TrimSpace(r.FormValue("tab"))
		sessions.MutateState(session.Token, func(s *workflow.State) { s.SetActiveTab(tab) })
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// SelectTemplateCommandHandler opens the submission form for a template.
func SelectTemplateCommandHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		session, _ := context.GetSessionFromContext(r.Context())
		name := strings.TrimSpace(r.FormValue("template"))
		sessions.MutateState(session.Token, func(s *workflow.State) { s.SelectTemplate(name) })
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// ClearTemplateCommandHandler returns from the form to the template grid.
func ClearTemplateCommandHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		sessions.MutateState(session.Token, func(s *workflow.State) { s.ClearTemplate() })
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// CreateTicketCommandHandler validates and stores a new ticket. Validation
// failures surface as a toast and leave the form on screen; success resets
// the form and confirms via toast.
func CreateTicketCommandHandler(db *sqlite.DB, sessions *cache.SessionCache, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseTicketForm(r); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		session, _ := context.GetSessionFromContext(r.Context())

		template := strings.TrimSpace(r.FormValue("template"))
		details, err := workflow.ParseDetails(template, r.Form)
		if err != nil {
			toast.Notify(w, toast.Error(err.Error()))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		images, err := parseTicketImages(r)
		if err != nil {
			toast.Notify(w, toast.Error(err.Error()))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		input := TicketInput{
			TemplateName: template,
			Description:  strings.TrimSpace(r.FormValue("description")),
			Details:      details,
			Images:       images,
		}
		if _, err := CreateTicket(r.Context(), db, auditSvc, session, input); err != nil {
			toast.Notify(w, toast.Error("failed to submit ticket"))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		// Land on the list that now shows the new ticket.
		sessions.MutateState(session.Token, func(s *workflow.State) { s.SetActiveTab(workflow.TabMyTickets) })
		toast.Notify(w, toast.Success("Ticket submitted successfully"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// ViewTicketCommandHandler opens the detail view for a ticket.
func ViewTicketCommandHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		id := chi.URLParam(r, "id")
		sessions.MutateState(session.Token, func(s *workflow.State) { s.ViewTicket(id) })
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// BackCommandHandler returns from the detail view to the active list.
func BackCommandHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		sessions.MutateState(session.Token, func(s *workflow.State) { s.CloseTicket() })
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// DecideTicketCommandHandler approves or rejects a pending ticket.
// Rejections without a comment are refused before any mutation.
func DecideTicketCommandHandler(db *sqlite.DB, sessions *cache.SessionCache, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		session, _ := context.GetSessionFromContext(r.Context())
		id := chi.URLParam(r, "id")
		decision := strings.TrimSpace(r.FormValue("decision"))
		comment := strings.TrimSpace(r.FormValue("comment"))

		if err := workflow.ValidateDecision(decision, comment, true); err != nil {
			toast.Notify(w, toast.Error("A comment is required to reject a ticket"))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		if err := DecideTicket(r.Context(), db, auditSvc, session.Token, id, decision, comment); err != nil {
			toast.Notify(w, toast.Error("failed to update ticket"))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		sessions.MutateState(session.Token, func(s *workflow.State) { s.CloseTicket() })
		if decision == workflow.StatusApproved {
			toast.Notify(w, toast.Success("Ticket approved"))
		} else {
			toast.Notify(w, toast.Success("Ticket rejected"))
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// EnterBulkModeCommandHandler starts multi-selection on the approvals list.
func EnterBulkModeCommandHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		sessions.MutateState(session.Token, func(s *workflow.State) { s.EnterBulkMode() })
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// CancelBulkModeCommandHandler exits multi-selection and clears the set.
func CancelBulkModeCommandHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		sessions.MutateState(session.Token, func(s *workflow.State) { s.ExitBulkMode() })
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// ToggleSelectionCommandHandler flips one ticket in or out of the bulk
// selection set.
func ToggleSelectionCommandHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		session, _ := context.GetSessionFromContext(r.Context())
		id := strings.TrimSpace(r.FormValue("id"))
		sessions.MutateState(session.Token, func(s *workflow.State) { s.ToggleSelection(id) })
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// BulkApproveCommandHandler approves every selected pending ticket, then
// exits bulk mode.
func BulkApproveCommandHandler(db *sqlite.DB, sessions *cache.SessionCache, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		state, ok := sessions.StateSnapshot(session.Token)
		if !ok {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}

		ids := state.SelectedIDs()
		if len(ids) == 0 {
			// The bar is hidden for empty selections; still leave bulk mode.
			sessions.MutateState(session.Token, func(s *workflow.State) { s.ExitBulkMode() })
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		approved, err := BulkApprove(r.Context(), db, auditSvc, session.Token, ids)
		if err != nil {
			toast.Notify(w, toast.Error("failed to approve tickets"))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		sessions.MutateState(session.Token, func(s *workflow.State) { s.ExitBulkMode() })
		if approved == 1 {
			toast.Notify(w, toast.Success("1 ticket approved"))
		} else {
			toast.Notify(w, toast.Success(strconv.FormatInt(approved, 10)+" tickets approved"))
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// TicketsPageQueryHandler renders the tickets tab of the bottom navigation,
// a read-only archive of everything this session submitted.
func TicketsPageQueryHandler(db *sqlite.DB, sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		list, err := ListTickets(r.Context(), db, ListFilter{SessionToken: session.Token})
		if err != nil {
			http.Error(w, "failed to load tickets", http.StatusInternalServerError)
			return
		}

		rows := make([]TicketRow, 0, len(list))
		for _, t := range list {
			rows = append(rows, TicketRow{
				ID:           t.ID,
				TemplateName: t.TemplateName,
				StoreCode:    t.StoreCode,
				EmployeeID:   t.EmployeeID,
				Status:       t.Status,
				CreatedAt:    t.CreatedAt.Local().Format("02 Jan 15:04"),
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := html.Shell("Tickets", "/tickets", nil, ArchivePage(rows))
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render page", http.StatusInternalServerError)
		}
	}
}

func parseTicketForm(r *http.Request) error {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type"))), "multipart/form-data") {
		return r.ParseMultipartForm(50 << 20) // 50MB for multiple photos
	}
	return r.ParseForm()
}

func parseTicketImages(r *http.Request) ([]ImageInput, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		return nil, nil
	}

	const maxPhoto = 5 << 20 // 5MB
	images := make([]ImageInput, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(io.LimitReader(file, maxPhoto+1))
		file.Close()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		if len(data) > maxPhoto {
			return nil, errors.New("each photo must be 5MB or less")
		}
		mimeType := strings.TrimSpace(header.Header.Get("Content-Type"))
		if mimeType == "" {
			mimeType = http.DetectContentType(data)
		}
		images = append(images, ImageInput{Blob: data, MIMEType: mimeType, FileName: header.Filename})
	}
	return images, nil
}
