package server

import (
	"net/http"

	"gitlab.com/umaxship/console/internal/payment"
)

func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := s.storage.GetWallet(r.Context(), currentSession(r).UID)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, wallet)
}

func (s *Server) handleRechargeWallet(w http.ResponseWriter, r *http.Request) {
	var req payment.RechargeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ps, err := s.storage.RechargeWallet(r.Context(), currentSession(r), req)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, ps)
}
