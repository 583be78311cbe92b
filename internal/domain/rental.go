package domain

import (
	"encoding/json"
	"time"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusApproved  RentalStatus = "approved"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusRejected  RentalStatus = "rejected"
)

// rentalTransitions is the closed transition table for rentals. Terminal
// states (completed, cancelled, rejected) have no outgoing edges.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPending:  {RentalStatusActive, RentalStatusApproved, RentalStatusRejected, RentalStatusCancelled},
	RentalStatusApproved: {RentalStatusActive, RentalStatusCancelled},
	RentalStatusActive:   {RentalStatusCompleted},
}

// CanTransitionTo reports whether the transition s -> next is legal.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s RentalStatus) IsTerminal() bool {
	return len(rentalTransitions[s]) == 0
}

type DamageLevel string

const (
	DamageLevelNone   DamageLevel = "none"
	DamageLevelMinor  DamageLevel = "minor"
	DamageLevelMedium DamageLevel = "medium"
	DamageLevelSevere DamageLevel = "severe"
)

// Condition maps a damage level to the candidate car condition after return.
// The second return value is false when the damage implies no downgrade.
func (d DamageLevel) Condition() (CarCondition, bool) {
	switch d {
	case DamageLevelMinor:
		return CarConditionGood, true
	case DamageLevelMedium:
		return CarConditionSatisfactory, true
	case DamageLevelSevere:
		return CarConditionNeedsRepair, true
	}
	return "", false
}

type Rental struct {
	ID              int64     `json:"id"`
	Reference       string    `json:"reference"`
	CarID           int64     `json:"car_id"`
	UserID          int64     `json:"user_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPrice      int64     `json:"total_price"`
	AppliedDiscount int       `json:"applied_discount"`
	// PersonalInfo is a free-form contact/identity snapshot captured at
	// creation time for generated agreement documents.
	PersonalInfo     json.RawMessage `json:"personal_info,omitempty"`
	Status           RentalStatus    `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	ApprovedBy       *int64          `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	ReturnDate       *time.Time      `json:"return_date,omitempty"`
	ReturnCondition  string          `json:"return_condition,omitempty"`
	ReturnApprovedBy *int64          `json:"return_approved_by,omitempty"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
}
