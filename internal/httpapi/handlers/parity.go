package handlers

import (
	"fmt"
	"net/http"
)

// ParityDashboard is a development-only diagnostic page, gated behind
// PROXY_MODE; its URL is not a stability contract (spec.md §6).
func (h Handlers) ParityDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, "<html><body><h1>parity dashboard</h1><p>development diagnostics only</p></body></html>")
}
