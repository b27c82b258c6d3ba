// Package httpapi builds the fixed CGI-style route surface the client
// expects: an optional mount-prefix strip, three route families (static
// file serve, dynamic handlers, and the dev-only /parity dashboard), 404
// on anything else (spec.md §4.H).
//
// Grounded on gorilla/mux for path→handler dispatch (the pack's only
// HTTP-serving weather-data repo, other_examples/..b0rgcube-weather.., uses
// it the same way: one mux.Router, explicit route registrations).
package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/httpapi/handlers"
	"github.com/hamprop/backend/internal/propagation"
)

// Deps wires everything the dynamic handlers need: the artifact root for
// static serving, the propagation engine for maps/band-conditions, the
// event logger, and the mount-prefix to strip.
type Deps struct {
	Paths      artifact.Path
	Engine     *propagation.Engine
	Logger     *slog.Logger
	PathPrefix string
	ProxyMode  bool
}

// staticPrefixes lists the artifact subdirectories the client reads
// directly as static files (spec.md §6).
var staticPrefixes = []string{
	"/geomag/", "/ssn/", "/solar-flux/", "/xray/", "/solar-wind/", "/Bz/",
	"/aurora/", "/dst/", "/NOAASpaceWX/", "/drap/", "/cty/", "/ONTA/",
	"/dxpeds/", "/contests/", "/worldwx/",
}

// NewRouter builds the complete route surface.
func NewRouter(deps Deps) http.Handler {
	r := mux.NewRouter()
	h := handlers.New(deps.Paths, deps.Engine, deps.Logger)

	r.HandleFunc("/fetchIPGeoloc.pl", h.IPGeoloc).Methods(http.MethodGet)
	r.HandleFunc("/fetchPSKReporter.pl", h.PSKReporter).Methods(http.MethodGet)
	r.HandleFunc("/fetchVOACAPArea.pl", h.VOACAPArea).Methods(http.MethodGet)
	r.HandleFunc("/fetchVOACAP-MUF.pl", h.VOACAPMUF).Methods(http.MethodGet)
	r.HandleFunc("/fetchVOACAP-TOA.pl", h.VOACAPTOA).Methods(http.MethodGet)
	r.HandleFunc("/fetchBandConditions.pl", h.BandConditions).Methods(http.MethodGet)
	r.HandleFunc("/wx.pl", h.Weather).Methods(http.MethodGet)
	r.HandleFunc("/version.pl", h.Version).Methods(http.MethodGet)
	r.PathPrefix("/SDO/").HandlerFunc(h.SDO)

	if deps.ProxyMode {
		r.HandleFunc("/parity", h.ParityDashboard).Methods(http.MethodGet)
	}

	for _, prefix := range staticPrefixes {
		r.PathPrefix(prefix).Handler(http.StripPrefix("/", http.FileServer(http.Dir(deps.Paths.Root()))))
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.NotFound(w, req)
	})

	return stripPrefix(deps.PathPrefix, recoverMiddleware(deps.Logger, r))
}

// stripPrefix removes a leading historical hosted-service mount (e.g.
// "/ham/HamClock") if the request path carries it.
func stripPrefix(prefix string, next http.Handler) http.Handler {
	if prefix == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, prefix) {
			r.URL.Path = strings.TrimPrefix(r.URL.Path, prefix)
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware catches a broken client connection or handler panic
// mid-response, logs it, answers 500 with a short plain-text reason (a
// no-op for the status if the handler already wrote headers), and keeps
// the server alive (spec.md §4.H: "broken
// client connections mid-response are caught and logged without tearing
// down the server").
func recoverMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Warn("request handler recovered from panic", "path", r.URL.Path, "error", rec)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
