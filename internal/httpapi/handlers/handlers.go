// Package handlers implements the seven dynamic CGI-style endpoints of
// spec.md §4.I, each its own method on Handlers with an explicit request
// struct rather than dynamic query-parameter dictionaries (Design Note).
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/propagation"
)

// Handlers holds everything a dynamic endpoint needs.
type Handlers struct {
	Paths  artifact.Path
	Engine *propagation.Engine
	Logger *slog.Logger
}

func New(paths artifact.Path, engine *propagation.Engine, logger *slog.Logger) Handlers {
	return Handlers{Paths: paths, Engine: engine, Logger: logger}
}

// versionResponse is the fixed 32-byte ASCII response the client parses
// with a strict scan (spec.md §6; matches server.py's literal response
// exactly — the spec's "31-byte" label is a known-wrong annotation).
const versionResponse = "4.22\nNo info for version  4.22\n\n"

func (h Handlers) Version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(versionResponse))
}
