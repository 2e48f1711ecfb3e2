package middleware

import (
	"fmt"
	"html"
	"net/http"
)

// IsHTMXRequest checks if the request was issued by HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// WriteErrorFragment writes an inline error box for HTMX requests and a
// plain text error otherwise
func WriteErrorFragment(w http.ResponseWriter, r *http.Request, status int, message string) {
	if !IsHTMXRequest(r) {
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	// HTMX skips swapping 4xx/5xx responses unless told otherwise
	w.Header().Set("HX-Retarget", "#messages")
	w.Header().Set("HX-Reswap", "innerHTML")
	w.WriteHeader(status)
	fmt.Fprintf(w, `
		<div class="bg-red-50 border border-red-200 text-red-800 p-4 rounded-lg" role="alert">
			<p class="text-sm">%s</p>
		</div>
	`, html.EscapeString(message))
}
