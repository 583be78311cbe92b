package http

import (
	"net/http"

	"autorent-backend/internal/domain"
)

type enterMaintenanceRequest struct {
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type completeMaintenanceRequest struct {
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
}

func (s *Server) handleEnterMaintenance(w http.ResponseWriter, r *http.Request) {
	var req enterMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	ticket, err := s.maintenance.EnterMaintenance(r.Context(), pathID(r), req.Description, domain.MaintenancePriority(req.Priority))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (s *Server) handleAcceptMaintenance(w http.ResponseWriter, r *http.Request) {
	ticket, err := s.maintenance.AcceptMaintenance(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (s *Server) handleCompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	var req completeMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	ticket, err := s.maintenance.CompleteMaintenance(r.Context(), pathID(r), req.Description, req.Cost)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (s *Server) handleListActiveMaintenance(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.maintenance.ListActive(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (s *Server) handleCarMaintenanceHistory(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.maintenance.CarHistory(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}
