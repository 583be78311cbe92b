package jobs

import (
	"context"

	"autorent-backend/internal/logger"
)

// SendUnpaidPenaltyReminders emails every user holding unpaid penalties.
// One email per user with the summed outstanding amount.
func (jr *JobRunner) SendUnpaidPenaltyReminders() {
	jr.runWithRecovery("SendUnpaidPenaltyReminders", func() {
		ctx := context.Background()

		penalties, err := jr.store.Penalties().ListUnpaid(ctx)
		if err != nil {
			logger.Error("Failed to list unpaid penalties", "error", err)
			return
		}
		if len(penalties) == 0 {
			logger.Info("No unpaid penalties to remind about")
			return
		}

		outstanding := make(map[int64]int64)
		var order []int64
		for _, p := range penalties {
			rental, err := jr.store.Rentals().GetByID(ctx, p.RentalID)
			if err != nil {
				logger.Error("Failed to resolve rental for penalty", "penalty_id", p.ID, "error", err)
				continue
			}
			if _, seen := outstanding[rental.UserID]; !seen {
				order = append(order, rental.UserID)
			}
			outstanding[rental.UserID] += p.Amount
		}

		sent := 0
		for _, userID := range order {
			user, err := jr.store.Users().GetByID(ctx, userID)
			if err != nil {
				logger.Error("Failed to load user for penalty reminder", "user_id", userID, "error", err)
				continue
			}
			if err := jr.services.Email.SendPenaltyReminder(ctx, user.Email, user.FullName, outstanding[userID]); err != nil {
				logger.Error("Failed to send penalty reminder", "user_id", userID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent penalty reminders", "sent", sent, "users", len(order))
	})
}
