package html

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"storeops/frontend/shared/nav"
	"storeops/frontend/shared/toast"
)

// Shell wraps a page body in the app chrome: header, toast, bottom
// navigation, CSRF form script.
func Shell(title, activePath string, t *toast.Toast, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>`)
		b.WriteString(html.EscapeString(title))
		b.WriteString(` - Store Ops</title><link rel="stylesheet" href="/assets/app.css"></head><body>`)
		b.WriteString(`<header class="app-header"><h1>Store Ops</h1></header>`)
		if t != nil {
			class := "toast"
			if t.Variant == toast.VariantDestructive {
				class += " toast-destructive"
			}
			b.WriteString(`<div class="`)
			b.WriteString(class)
			b.WriteString(`"><strong>`)
			b.WriteString(html.EscapeString(t.Title))
			b.WriteString(`</strong><span>`)
			b.WriteString(html.EscapeString(t.Description))
			b.WriteString(`</span></div>`)
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}

		var tail strings.Builder
		tail.WriteString(nav.BottomNav(activePath))
		tail.WriteString(CSRFFormScript())
		tail.WriteString(`</body></html>`)
		_, err := io.WriteString(w, tail.String())
		return err
	})
}

// PlaceholderPage is the body of the stub screens reachable from the
// bottom navigation.
func PlaceholderPage(heading, blurb string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<main class="page"><h2>`)
		b.WriteString(html.EscapeString(heading))
		b.WriteString(`</h2><p class="muted">`)
		b.WriteString(html.EscapeString(blurb))
		b.WriteString(`</p></main>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// CSRFFormScript injects a hidden _csrf field into POST forms based on the
// CSRF cookie.
func CSRFFormScript() string {
	return `<script>
(function () {
  function getCookie(name) {
    var prefix = name + "=";
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf(prefix) === 0) return decodeURIComponent(c.substring(prefix.length));
    }
    return "";
  }

  function inject() {
    var token = getCookie("X-CSRF-Token");
    if (!token) return;

    var forms = document.querySelectorAll("form");
    for (var i = 0; i < forms.length; i++) {
      var form = forms[i];
      var method = (form.getAttribute("method") || "GET").toUpperCase();
      if (method !== "POST") continue;
      if (form.querySelector("input[name='_csrf']")) continue;

      var input = document.createElement("input");
      input.type = "hidden";
      input.name = "_csrf";
      input.value = token;
      form.appendChild(input);
    }
  }

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", inject);
  } else {
    inject();
  }
})();
</script>`
}
