package server

import (
	"net/http"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/complaint"
)

type complaintView struct {
	complaint.Complaint
	StatusLabel string `json:"statusLabel"`
}

func viewComplaint(c complaint.Complaint) complaintView {
	return complaintView{Complaint: c, StatusLabel: c.Status.Display()}
}

func (s *Server) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	list, err := s.storage.ListComplaints(r.Context(), currentSession(r).UID)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	views := make([]complaintView, 0, len(list))
	for _, c := range list {
		views = append(views, viewComplaint(c))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetComplaint(w http.ResponseWriter, r *http.Request) {
	c, err := s.storage.GetComplaint(r.Context(), currentSession(r).UID, r.PathValue("id"))
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, viewComplaint(c))
}

func (s *Server) handleCreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AWBNumber string `json:"awbNumber"`
		Issue     string `json:"issue"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := s.storage.CreateComplaint(r.Context(), currentSession(r).UID, req.AWBNumber, req.Issue)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, viewComplaint(c))
}

func (s *Server) handleAddReply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReplyText string `json:"replyText"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess := currentSession(r)
	author := sess.DisplayName
	if author == "" {
		author = sess.Email
	}

	reply, err := s.storage.AddReply(r.Context(), sess.UID, r.PathValue("id"), req.ReplyText, author)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, reply)
}

func (s *Server) handleSetComplaintStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	to, ok := complaint.ParseStatus(req.Status)
	if !ok {
		s.respondStorageError(w, r, apperrors.NewValidationError("status"))
		return
	}

	c, err := s.storage.SetComplaintStatus(r.Context(), currentSession(r).UID, r.PathValue("id"), to)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, viewComplaint(c))
}
