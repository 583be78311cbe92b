package http

import (
	"net/http"

	"autorent-backend/internal/domain"
)

type penaltyAccountingResponse struct {
	Penalties []domain.Penalty `json:"penalties"`
	TotalPaid int64            `json:"total_paid"`
}

func (s *Server) handleListMyPenalties(w http.ResponseWriter, r *http.Request) {
	penalties, err := s.penalties.ListUserPenalties(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, penalties)
}

func (s *Server) handlePayPenalty(w http.ResponseWriter, r *http.Request) {
	penalty, err := s.penalties.PayPenalty(r.Context(), userIDFrom(r.Context()), pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, penalty)
}

func (s *Server) handlePenaltyAccounting(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = "all"
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "all"
	}

	penalties, totalPaid, err := s.penalties.ListForAccounting(r.Context(), status, period)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, penaltyAccountingResponse{Penalties: penalties, TotalPaid: totalPaid})
}
