package domain

import "time"

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

var maintenanceTransitions = map[MaintenanceStatus][]MaintenanceStatus{
	MaintenanceStatusPending:    {MaintenanceStatusInProgress},
	MaintenanceStatusInProgress: {MaintenanceStatusCompleted},
}

// CanTransitionTo reports whether the transition s -> next is legal.
func (s MaintenanceStatus) CanTransitionTo(next MaintenanceStatus) bool {
	for _, allowed := range maintenanceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type MaintenancePriority string

const (
	MaintenancePriorityNormal MaintenancePriority = "normal"
	MaintenancePriorityHigh   MaintenancePriority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p MaintenancePriority) Valid() bool {
	return p == MaintenancePriorityNormal || p == MaintenancePriorityHigh
}

type Maintenance struct {
	ID              int64               `json:"id"`
	CarID           int64               `json:"car_id"`
	MaintenanceDate time.Time           `json:"maintenance_date"`
	Description     string              `json:"description"`
	Cost            int64               `json:"cost"`
	Status          MaintenanceStatus   `json:"status"`
	Priority        MaintenancePriority `json:"priority"`
	CompletedDate   *time.Time          `json:"completed_date,omitempty"`
}
