package service

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository"
)

const defaultMaintenanceDescription = "Scheduled maintenance"

type maintenanceService struct {
	store repository.Store
	now   func() time.Time
}

func NewMaintenanceService(store repository.Store, now func() time.Time) MaintenanceService {
	if now == nil {
		now = time.Now
	}
	return &maintenanceService{store: store, now: now}
}

func (s *maintenanceService) EnterMaintenance(ctx context.Context, carID int64, description string, priority domain.MaintenancePriority) (*domain.Maintenance, error) {
	if description == "" {
		description = defaultMaintenanceDescription
	}
	if priority == "" {
		priority = domain.MaintenancePriorityNormal
	}
	if !priority.Valid() {
		return nil, domain.NewValidationError("priority", "must be normal or high")
	}

	maintenance := &domain.Maintenance{
		CarID:           carID,
		MaintenanceDate: s.now(),
		Description:     description,
		Status:          domain.MaintenanceStatusPending,
		Priority:        priority,
	}

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		car, err := tx.Cars().GetByIDForUpdate(ctx, carID)
		if err != nil {
			return err
		}
		if car.Status != domain.CarStatusAvailable {
			return domain.NewStateError("car is not available for maintenance")
		}
		if err := tx.Maintenance().Create(ctx, maintenance); err != nil {
			return err
		}
		car.Status = domain.CarStatusMaintenance
		return tx.Cars().Update(ctx, car)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Car sent to maintenance", "car_id", carID, "maintenance_id", maintenance.ID)
	return maintenance, nil
}

func (s *maintenanceService) AcceptMaintenance(ctx context.Context, maintenanceID int64) (*domain.Maintenance, error) {
	var maintenance *domain.Maintenance
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		maintenance, err = tx.Maintenance().GetByIDForUpdate(ctx, maintenanceID)
		if err != nil {
			return err
		}
		if maintenance.Status != domain.MaintenanceStatusPending {
			return domain.NewStateError("only pending maintenance tickets can be accepted")
		}
		maintenance.Status = domain.MaintenanceStatusInProgress
		return tx.Maintenance().Update(ctx, maintenance)
	})
	if err != nil {
		return nil, err
	}
	return maintenance, nil
}

func (s *maintenanceService) CompleteMaintenance(ctx context.Context, maintenanceID int64, description string, cost int64) (*domain.Maintenance, error) {
	if cost < 0 {
		return nil, domain.NewValidationError("cost", "must not be negative")
	}

	var maintenance *domain.Maintenance
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		maintenance, err = tx.Maintenance().GetByIDForUpdate(ctx, maintenanceID)
		if err != nil {
			return err
		}
		car, err := tx.Cars().GetByIDForUpdate(ctx, maintenance.CarID)
		if err != nil {
			return err
		}
		if car.Status != domain.CarStatusMaintenance {
			return domain.NewStateError("car is not under maintenance")
		}
		if maintenance.Status != domain.MaintenanceStatusInProgress {
			return domain.NewStateError("only in-progress maintenance tickets can be completed")
		}

		now := s.now()
		if description != "" {
			maintenance.Description = description
		}
		maintenance.Cost = cost
		maintenance.Status = domain.MaintenanceStatusCompleted
		maintenance.CompletedDate = &now
		if err := tx.Maintenance().Update(ctx, maintenance); err != nil {
			return err
		}

		// Completed maintenance fully restores the car, whatever the prior
		// severity.
		car.Status = domain.CarStatusAvailable
		car.Condition = domain.CarConditionExcellent
		return tx.Cars().Update(ctx, car)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Maintenance completed", "maintenance_id", maintenanceID, "car_id", maintenance.CarID, "cost", cost)
	return maintenance, nil
}

func (s *maintenanceService) ListActive(ctx context.Context) ([]domain.Maintenance, error) {
	return s.store.Maintenance().ListActive(ctx)
}

func (s *maintenanceService) CarHistory(ctx context.Context, carID int64) ([]domain.Maintenance, error) {
	if _, err := s.store.Cars().GetByID(ctx, carID); err != nil {
		return nil, err
	}
	return s.store.Maintenance().ListByCar(ctx, carID)
}
