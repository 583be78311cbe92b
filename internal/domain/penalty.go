package domain

import "time"

// Penalty is created only by the return flow, never directly by a client.
// It is owned by its rental and removed only when the rental is deleted.
type Penalty struct {
	ID          int64      `json:"id"`
	RentalID    int64      `json:"rental_id"`
	Amount      int64      `json:"amount"`
	Description string     `json:"description"`
	IsPaid      bool       `json:"is_paid"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}
