package server

import (
	"encoding/json"
	"net/http"

	"wiredeck/internal/wgkey"
)

func (s *Server) handleGenerateKeypair(w http.ResponseWriter, r *http.Request) {
	// Prefer the wg binary, matching what wg-quick will accept; generate
	// natively when the binary is missing.
	private, public, err := s.client.GenerateKeypair()
	if err != nil {
		pair, genErr := wgkey.Generate()
		if genErr != nil {
			writeError(w, genErr)
			return
		}
		private, public = pair.PrivateKey, pair.PublicKey
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"privateKey": private,
		"publicKey":  public,
	})
}

func (s *Server) handleDerivePublicKey(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PrivateKey string `json:"privateKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if !wgkey.Valid(payload.PrivateKey) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "privateKey is not a valid WireGuard key"})
		return
	}
	public, err := s.client.DerivePublicKey(payload.PrivateKey)
	if err != nil {
		public, err = wgkey.DerivePublicKey(payload.PrivateKey)
		if err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"publicKey": public})
}
