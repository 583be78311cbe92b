package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/security"
	"autorent-backend/internal/service"
)

// Server wires the HTTP surface onto the service layer.
type Server struct {
	rentals     service.RentalService
	maintenance service.MaintenanceService
	penalties   service.PenaltyService
	finance     service.FinanceService
	tokens      security.TokenManager
	cars        CarLister
	startTime   time.Time
}

// CarLister is the read-only car access the HTTP layer needs. The postgres
// car repository satisfies it.
type CarLister interface {
	ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error)
}

func NewServer(
	rentals service.RentalService,
	maintenance service.MaintenanceService,
	penalties service.PenaltyService,
	finance service.FinanceService,
	cars CarLister,
	tokens security.TokenManager,
) *Server {
	return &Server{
		rentals:     rentals,
		maintenance: maintenance,
		penalties:   penalties,
		finance:     finance,
		cars:        cars,
		tokens:      tokens,
		startTime:   time.Now(),
	}
}

// Router builds the route table. Clients manage their own rentals and
// penalties, operators drive approvals and maintenance, accounting and
// finance reports are admin only.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Cars
	api.HandleFunc("/cars/available", s.requireRole(s.handleListAvailableCars, domain.RoleClient, domain.RoleOperator)).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}/maintenance", s.requireRole(s.handleCarMaintenanceHistory, domain.RoleOperator)).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}/maintenance", s.requireRole(s.handleEnterMaintenance, domain.RoleOperator)).Methods(http.MethodPost)

	// Rentals
	api.HandleFunc("/rentals", s.requireRole(s.handleCreateRental, domain.RoleClient)).Methods(http.MethodPost)
	api.HandleFunc("/rentals", s.requireRole(s.handleListMyRentals, domain.RoleClient)).Methods(http.MethodGet)
	api.HandleFunc("/rentals/quote", s.requireRole(s.handleQuote, domain.RoleClient)).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}", s.requireRole(s.handleGetRental, domain.RoleClient)).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}/return", s.requireRole(s.handleReturnRental, domain.RoleClient)).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/approve", s.requireRole(s.handleApproveRental, domain.RoleOperator)).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/reject", s.requireRole(s.handleRejectRental, domain.RoleOperator)).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/complete", s.requireRole(s.handleCompleteReturn, domain.RoleOperator)).Methods(http.MethodPost)
	api.HandleFunc("/operator/rentals", s.requireRole(s.handleListRentalsByStatus, domain.RoleOperator)).Methods(http.MethodGet)

	// Maintenance
	api.HandleFunc("/maintenance", s.requireRole(s.handleListActiveMaintenance, domain.RoleOperator)).Methods(http.MethodGet)
	api.HandleFunc("/maintenance/{id:[0-9]+}/accept", s.requireRole(s.handleAcceptMaintenance, domain.RoleOperator)).Methods(http.MethodPost)
	api.HandleFunc("/maintenance/{id:[0-9]+}/complete", s.requireRole(s.handleCompleteMaintenance, domain.RoleOperator)).Methods(http.MethodPost)

	// Penalties
	api.HandleFunc("/penalties", s.requireRole(s.handleListMyPenalties, domain.RoleClient)).Methods(http.MethodGet)
	api.HandleFunc("/penalties/{id:[0-9]+}/pay", s.requireRole(s.handlePayPenalty, domain.RoleClient)).Methods(http.MethodPost)
	api.HandleFunc("/accounting/penalties", s.requireRole(s.handlePenaltyAccounting, domain.RoleAdmin)).Methods(http.MethodGet)

	// Finance
	api.HandleFunc("/finance/cars", s.requireRole(s.handleCarFinances, domain.RoleAdmin)).Methods(http.MethodGet)
	api.HandleFunc("/finance/statistics", s.requireRole(s.handleStatistics, domain.RoleAdmin)).Methods(http.MethodGet)
	api.HandleFunc("/finance/tax", s.requireRole(s.handleTaxReport, domain.RoleAdmin)).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "UP",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}
