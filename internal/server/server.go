// Package server exposes the WireDeck operations over a local HTTP API for
// the desktop shell: config CRUD, peer management, interface control, key
// generation, status, and recorded history.
package server

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wiredeck/internal/history"
	"wiredeck/internal/settings"
	"wiredeck/internal/store"
	"wiredeck/internal/wgctl"
)

var configNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// Server handles HTTP requests for the GUI shell.
type Server struct {
	store    *store.Store
	client   *wgctl.Client
	recorder *history.Recorder
	settings *settings.Manager
}

// New creates an HTTP server. recorder and settingsManager may be nil; the
// corresponding endpoints report unavailable.
func New(configStore *store.Store, client *wgctl.Client, recorder *history.Recorder, settingsManager *settings.Manager) *Server {
	return &Server{
		store:    configStore,
		client:   client,
		recorder: recorder,
		settings: settingsManager,
	}
}

// Router constructs the http.Handler with all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Get("/configs", s.handleListConfigs)
		api.Get("/configs/{name}", s.handleLoadConfig)
		api.Put("/configs/{name}", s.handleSaveConfig)

		api.Post("/configs/{name}/peers", s.handleAddPeer)
		api.Put("/configs/{name}/peers", s.handleUpdatePeer)
		api.Delete("/configs/{name}/peers", s.handleDeletePeer)
		api.Get("/configs/{name}/suggest-address", s.handleSuggestAddress)

		api.Get("/configs/{name}/status", s.handleStatus)
		api.Get("/configs/{name}/running", s.handleRunning)
		api.Post("/configs/{name}/up", s.handleUp)
		api.Post("/configs/{name}/down", s.handleDown)
		api.Post("/configs/{name}/restart", s.handleRestart)
		api.Get("/configs/{name}/history", s.handleHistory)

		api.Post("/keypair", s.handleGenerateKeypair)
		api.Post("/pubkey", s.handleDerivePublicKey)

		api.Get("/directory", s.handleDirectory)
		api.Get("/settings", s.handleGetSettings)
		api.Put("/settings", s.handlePutSettings)
	})

	return r
}

// requireConfigName validates the {name} route parameter. Config names become
// file names, so traversal characters are rejected outright.
func (s *Server) requireConfigName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if !configNamePattern.MatchString(name) || name == "." || name == ".." {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid config name"})
		return "", false
	}
	return name, true
}
