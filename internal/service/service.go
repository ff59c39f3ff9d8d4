package service

import (
	"context"
	"time"

	"pool_automation/internal/logger"
	"pool_automation/internal/metrics"
	"pool_automation/internal/models"
	"pool_automation/internal/repository"
)

// Panel is the device endpoint: a status page and a key press.
// *device.Client implements it.
type Panel interface {
	Status(ctx context.Context) (string, error)
	PressKey(ctx context.Context, key string) error
}

// Control changes the panel state by pressing buttons.
type Control interface {
	ChangeState(ctx context.Context, cmd Command) (CommandResult, error)
}

// Monitoring exposes the current decoded device state.
type Monitoring interface {
	GetState(ctx context.Context) (models.DeviceState, error)
}

// Diagnostics decodes a raw LED segment without touching the device.
type Diagnostics interface {
	DecodeKeys(raw string) KeyReport
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.PoolEvent, error)
}

// Poller runs the background loop that refreshes the state from the panel.
// Stop via context cancellation in main() for graceful shutdown.
type Poller interface {
	Run(ctx context.Context, interval time.Duration)
	PollOnce(ctx context.Context) error
}

// Service aggregates all sub-services.
type Service struct {
	Control
	Monitoring
	Diagnostics
	EventLog
	Poller
}

// Options tunes the command path.
type Options struct {
	// SettleDelay is the pause between two presses of the same button.
	SettleDelay time.Duration
}

// NewService wires the repositories, the shared state store and the panel
// into concrete services.
func NewService(repos *repository.Repository, store *StateStore, panel Panel, m *metrics.Metrics, log *logger.Logger, opts Options) *Service {
	return &Service{
		Control:     NewControlService(store, panel, repos.EventRepo, m, log.Named("control"), opts.SettleDelay),
		Monitoring:  NewMonitoringService(store),
		Diagnostics: NewDiagnosticsService(),
		EventLog:    NewEventLogService(repos.EventRepo),
		Poller:      NewPollerService(store, panel, repos.StateRepo, repos.EventRepo, m, log.Named("poller")),
	}
}

// LoadStateStore seeds a StateStore from the last persisted snapshot. A
// missing or unreadable snapshot yields a fresh state.
func LoadStateStore(ctx context.Context, repo repository.StateRepo, log *logger.Logger) *StateStore {
	st, err := repo.Load(ctx)
	if err != nil {
		log.Warnw("state_load_failed", "err", err)
		return NewStateStore(models.NewDeviceState())
	}
	if st.ID == 0 {
		log.Infow("state_fresh")
		return NewStateStore(models.NewDeviceState())
	}
	log.Infow("state_loaded", "mode", st.Mode().String(), "filter", st.FilterMode().String(), "updated_at", st.UpdatedAt)
	return NewStateStore(st)
}
