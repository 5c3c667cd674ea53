package server

import (
	"net/http"
	"strconv"
	"time"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	statuses, err := s.client.Status(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"peers": statuses})
}

func (s *Server) handleRunning(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"running": s.client.InterfaceUp(name)})
}

func (s *Server) handleUp(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	out, err := s.client.Up(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"output": out})
}

func (s *Server) handleDown(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	out, err := s.client.Down(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"output": out})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	out, err := s.client.Restart(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"output": out})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history recording unavailable"})
		return
	}
	name, ok := s.requireConfigName(w, r)
	if !ok {
		return
	}
	hours := 24
	if raw := r.URL.Query().Get("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "hours must be a positive integer"})
			return
		}
		hours = parsed
	}
	samples, err := s.recorder.Samples(name, time.Now().UTC().Add(-time.Duration(hours)*time.Hour))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"samples": samples})
}
