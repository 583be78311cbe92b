package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/service"
	"autorent-backend/internal/utils"
)

type createRentalRequest struct {
	CarID           int64           `json:"car_id"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	TotalPrice      int64           `json:"total_price"`
	AppliedDiscount int             `json:"applied_discount"`
	PersonalInfo    json.RawMessage `json:"personal_info,omitempty"`
}

type quoteRequest struct {
	CarID     int64  `json:"car_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type quoteResponse struct {
	TotalPrice      int64 `json:"total_price"`
	DiscountPercent int   `json:"discount_percent"`
}

type rejectRentalRequest struct {
	Reason string `json:"reason"`
}

type returnRentalRequest struct {
	ReturnCondition string          `json:"return_condition"`
	FuelLevel       json.RawMessage `json:"fuel_level"`
	DamageLevel     string          `json:"damage_level"`
}

// fuelLevelText extracts the raw fuel reading, whether the client sent a
// JSON number or a quoted string. Anything non-numeric falls through to the
// full-tank default in ParseFuelLevel.
func fuelLevelText(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	if text == "null" {
		return ""
	}
	return text
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// parseDate accepts the same formats tolerated elsewhere for legacy dates.
func parseDate(value string) (time.Time, bool) {
	return utils.ParseFlexibleTime(value)
}

func (s *Server) handleCreateRental(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	start, ok := parseDate(req.StartDate)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date", Field: "start_date"})
		return
	}
	end, ok := parseDate(req.EndDate)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date", Field: "end_date"})
		return
	}

	rental, err := s.rentals.CreateRental(r.Context(), userIDFrom(r.Context()), service.CreateRentalInput{
		CarID:           req.CarID,
		StartDate:       start,
		EndDate:         end,
		TotalPrice:      req.TotalPrice,
		AppliedDiscount: req.AppliedDiscount,
		PersonalInfo:    req.PersonalInfo,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	start, ok := parseDate(req.StartDate)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date", Field: "start_date"})
		return
	}
	end, ok := parseDate(req.EndDate)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date", Field: "end_date"})
		return
	}

	total, discount, err := s.rentals.Quote(r.Context(), userIDFrom(r.Context()), req.CarID, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{TotalPrice: total, DiscountPercent: discount})
}

func (s *Server) handleGetRental(w http.ResponseWriter, r *http.Request) {
	rental, err := s.rentals.GetRental(r.Context(), userIDFrom(r.Context()), pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleListMyRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := s.rentals.ListUserRentals(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (s *Server) handleListRentalsByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.RentalStatusPending
	}
	rentals, err := s.rentals.ListByStatus(r.Context(), status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (s *Server) handleApproveRental(w http.ResponseWriter, r *http.Request) {
	rental, err := s.rentals.ApproveRental(r.Context(), userIDFrom(r.Context()), pathID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleRejectRental(w http.ResponseWriter, r *http.Request) {
	var req rejectRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	rental, err := s.rentals.RejectRental(r.Context(), userIDFrom(r.Context()), pathID(r), req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleReturnRental(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeReturnInput(w, r)
	if !ok {
		return
	}
	// Ownership check before mutating anything.
	if _, err := s.rentals.GetRental(r.Context(), userIDFrom(r.Context()), pathID(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	rental, err := s.rentals.ReturnRental(r.Context(), pathID(r), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleCompleteReturn(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeReturnInput(w, r)
	if !ok {
		return
	}
	rental, err := s.rentals.CompleteReturn(r.Context(), userIDFrom(r.Context()), pathID(r), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) decodeReturnInput(w http.ResponseWriter, r *http.Request) (service.ReturnInput, bool) {
	var req returnRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return service.ReturnInput{}, false
	}
	return service.ReturnInput{
		ReturnCondition: req.ReturnCondition,
		FuelLevel:       utils.ParseFuelLevel(fuelLevelText(req.FuelLevel)),
		DamageLevel:     domain.DamageLevel(req.DamageLevel),
	}, true
}

func (s *Server) handleListAvailableCars(w http.ResponseWriter, r *http.Request) {
	cars, err := s.cars.ListByStatus(r.Context(), domain.CarStatusAvailable)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}
