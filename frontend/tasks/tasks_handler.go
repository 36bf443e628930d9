package tasks

import (
	"net/http"

	"storeops/frontend/shared/html"
)

// TasksPageQueryHandler renders the tasks placeholder reachable from the
// bottom navigation.
func TasksPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		body := html.PlaceholderPage("Tasks", "Daily task lists are not available yet. Check back soon.")
		page := html.Shell("Tasks", "/tasks", nil, body)
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render tasks page", http.StatusInternalServerError)
		}
	}
}
