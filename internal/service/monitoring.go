package service

import (
	"context"

	"pool_automation/internal/models"
)

type MonitoringService struct {
	store *StateStore
}

func NewMonitoringService(store *StateStore) *MonitoringService {
	return &MonitoringService{store: store}
}

// GetState returns a deep copy of the current device state. Callers may
// modify it freely.
func (s *MonitoringService) GetState(ctx context.Context) (models.DeviceState, error) {
	if err := ctx.Err(); err != nil {
		return models.DeviceState{}, err
	}
	return s.store.Snapshot(), nil
}
