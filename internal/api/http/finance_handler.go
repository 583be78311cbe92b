package http

import (
	"net/http"
)

func (s *Server) handleCarFinances(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.finance.CarFinancialHistory(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}
	includePenalties := r.URL.Query().Get("include_penalties") == "true"

	report, err := s.finance.Statistics(r.Context(), period, includePenalties)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleTaxReport(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}
	report, err := s.finance.TaxReport(r.Context(), period)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
