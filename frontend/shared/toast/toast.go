package toast

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "storeops_toast"

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Toast is a one-shot notification rendered on the next page load.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

// Success is shorthand for a default-variant toast.
func Success(description string) Toast {
	return Toast{Title: "Success", Description: description}
}

// Error is shorthand for a destructive-variant toast.
func Error(description string) Toast {
	return Toast{Title: "Error", Description: description, Variant: VariantDestructive}
}

// Notify queues a toast via a flash cookie. Fire and forget: failures to
// encode are silently dropped, matching the notify contract.
func Notify(w http.ResponseWriter, t Toast) {
	payload, err := json.Marshal(t)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop reads and clears the pending toast, if any.
func Pop(w http.ResponseWriter, r *http.Request) (Toast, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return Toast{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return Toast{}, false
	}
	var t Toast
	if err := json.Unmarshal(payload, &t); err != nil {
		return Toast{}, false
	}
	return t, true
}
