package server

import (
	"net/http"

	"gitlab.com/umaxship/console/internal/warehouse"
)

func (s *Server) handleListWarehouses(w http.ResponseWriter, r *http.Request) {
	list, err := s.storage.ListWarehouses(r.Context(), currentSession(r).UID)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	if list == nil {
		list = []warehouse.Warehouse{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var form warehouse.Form
	if err := decodeBody(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.storage.CreateWarehouse(r.Context(), currentSession(r).UID, form)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteWarehouse(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("id")
	if !warehouse.IsKey(key) {
		respondError(w, http.StatusBadRequest, "Invalid pickup location")
		return
	}

	if err := s.storage.DeleteWarehouse(r.Context(), currentSession(r).UID, key); err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Pickup location deleted",
	})
}
