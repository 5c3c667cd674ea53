package server

import (
	"encoding/json"
	"net/http"

	"wiredeck/internal/wgconf"
)

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"configs": names})
}

func (s *Server) handleLoadConfig(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	config, err := s.store.Load(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"config": config})
}

func (s *Server) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	var config wgconf.Config
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	// The URL owns the identity; the body cannot redirect the write.
	config.Name = name
	config.Path = s.store.Path(name)
	if err := s.store.Save(&config); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"config": config})
}
