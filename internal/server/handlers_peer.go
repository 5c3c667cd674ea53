package server

import (
	"encoding/json"
	"net/http"

	"wiredeck/internal/ipalloc"
	"wiredeck/internal/wgconf"
)

func (s *Server) handleAddPeer(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	var peer wgconf.Peer
	if err := json.NewDecoder(r.Body).Decode(&peer); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	config, err := s.store.AddPeer(name, peer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"config": config})
}

func (s *Server) handleUpdatePeer(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	// Public keys are base64 and contain '/', so they travel in the body
	// rather than the URL path.
	var payload struct {
		PublicKey string      `json:"publicKey"`
		Peer      wgconf.Peer `json:"peer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if payload.PublicKey == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "publicKey is required"})
		return
	}
	config, err := s.store.UpdatePeer(name, payload.PublicKey, payload.Peer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"config": config})
}

func (s *Server) handleDeletePeer(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	var payload struct {
		PublicKey string `json:"publicKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if payload.PublicKey == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "publicKey is required"})
		return
	}
	config, err := s.store.DeletePeer(name, payload.PublicKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"config": config})
}

func (s *Server) handleSuggestAddress(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	config, err := s.store.Load(name)
	if err != nil {
		writeError(w, err)
		return
	}
	suggestion, err := ipalloc.Suggest(config)
	if err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"address": suggestion})
}
