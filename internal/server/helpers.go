package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"wiredeck/internal/store"
	"wiredeck/internal/wgctl"
	"wiredeck/internal/wgconf"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var cmdErr *wgctl.CommandError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, wgconf.ErrPeerNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, wgconf.ErrNoInterface):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.As(err, &cmdErr):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
