package jobs

import (
	"context"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
)

// RefreshUserDiscounts recomputes the loyalty discount of every client.
// Rentals completed in a previous month stop counting the moment the month
// rolls over, so the nightly run keeps stale tiers from surviving past that
// boundary.
func (jr *JobRunner) RefreshUserDiscounts() {
	jr.runWithRecovery("RefreshUserDiscounts", func() {
		ctx := context.Background()

		clients, err := jr.store.Users().ListByRole(ctx, domain.RoleClient)
		if err != nil {
			logger.Error("Failed to list clients for discount refresh", "error", err)
			return
		}

		for _, client := range clients {
			rate := jr.services.Discount.CalculateDiscount(ctx, client.ID)
			logger.Debug("Refreshed user discount", "user_id", client.ID, "rate", rate)
		}
		logger.Info("Refreshed discounts", "count", len(clients))
	})
}
