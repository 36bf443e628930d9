package settings

import (
	"net/http"
	"strings"

	"storeops/frontend/shared/context"
	"storeops/frontend/shared/html"
	"storeops/frontend/shared/toast"
	"storeops/infrastructure/cache"
)

// SettingsPageQueryHandler renders the profile form. The store code and
// employee id entered here are stamped onto every ticket this session
// submits.
func SettingsPageQueryHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())

		var t *toast.Toast
		if popped, ok := toast.Pop(w, r); ok {
			t = &popped
		}

		data := PageData{StoreCode: session.StoreCode, EmployeeID: session.EmployeeID}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := html.Shell("Settings", "/settings", t, SettingsPage(data))
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render settings page", http.StatusInternalServerError)
		}
	}
}

// UpdateProfileCommandHandler stores the submitted profile on the session.
func UpdateProfileCommandHandler(sessions *cache.SessionCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		session, _ := context.GetSessionFromContext(r.Context())

		storeCode := strings.TrimSpace(r.FormValue("store_code"))
		employeeID := strings.TrimSpace(r.FormValue("employee_id"))
		if storeCode == "" {
			toast.Notify(w, toast.Error("Store code is required"))
			http.Redirect(w, r, "/settings", http.StatusSeeOther)
			return
		}

		if !sessions.SetProfile(session.Token, storeCode, employeeID) {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}
		toast.Notify(w, toast.Success("Profile saved"))
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
	}
}
