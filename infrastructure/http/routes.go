package http

import (
	"github.com/go-chi/chi/v5"

	"storeops/frontend/attachments"
	"storeops/frontend/products"
	"storeops/frontend/reports"
	"storeops/frontend/settings"
	"storeops/frontend/tasks"
	ticketspage "storeops/frontend/tickets"
)

// RegisterFrontendRoutes wires every screen and command of the app.
func (s *Server) RegisterFrontendRoutes(r chi.Router) chi.Router {
	// Workflow shell.
	r.Get("/", ticketspage.HomePageQueryHandler(s.DB, s.SessionCache))
	r.Post("/tab", ticketspage.SetTabCommandHandler(s.SessionCache))
	r.Post("/templates/select", ticketspage.SelectTemplateCommandHandler(s.SessionCache))
	r.Post("/templates/clear", ticketspage.ClearTemplateCommandHandler(s.SessionCache))

	// Tickets.
	r.Post("/tickets", ticketspage.CreateTicketCommandHandler(s.DB, s.SessionCache, s.Audit))
	r.Get("/tickets", ticketspage.TicketsPageQueryHandler(s.DB, s.SessionCache))
	r.Post("/tickets/{id}/view", ticketspage.ViewTicketCommandHandler(s.SessionCache))
	r.Post("/tickets/{id}/back", ticketspage.BackCommandHandler(s.SessionCache))
	r.Post("/tickets/{id}/decision", ticketspage.DecideTicketCommandHandler(s.DB, s.SessionCache, s.Audit))
	r.Get("/tickets/{id}/barcode.png", ticketspage.BarcodeQueryHandler(s.DB))

	// Bulk selection.
	r.Post("/selection/mode", ticketspage.EnterBulkModeCommandHandler(s.SessionCache))
	r.Post("/selection/cancel", ticketspage.CancelBulkModeCommandHandler(s.SessionCache))
	r.Post("/selection/toggle", ticketspage.ToggleSelectionCommandHandler(s.SessionCache))
	r.Post("/selection/approve", ticketspage.BulkApproveCommandHandler(s.DB, s.SessionCache, s.Audit))

	// Lookups and stored photos.
	r.Get("/products/search", products.SearchQueryHandler(s.DB))
	r.Get("/attachments/{ref}", attachments.PhotoQueryHandler(s.DB))

	// Reports and exports.
	r.Get("/reports", reports.ReportsPageQueryHandler(s.DB))
	r.Get("/reports/tickets.csv", reports.TicketsExportCSVHandler(s.DB))
	r.Get("/reports/tickets.pdf", reports.TicketsExportPDFHandler(s.DB))

	// Remaining navigation targets.
	r.Get("/tasks", tasks.TasksPageQueryHandler())
	r.Get("/settings", settings.SettingsPageQueryHandler(s.SessionCache))
	r.Post("/settings/profile", settings.UpdateProfileCommandHandler(s.SessionCache))

	return r
}
