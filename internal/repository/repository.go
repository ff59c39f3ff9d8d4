package repository

import (
	"context"
	"database/sql"
	"time"

	"pool_automation/internal/models"
)

// StateRepo persists the single device state snapshot.
type StateRepo interface {
	Save(ctx context.Context, s models.DeviceState) error
	// Load returns a zero state (ID 0) when nothing has been saved yet.
	Load(ctx context.Context) (models.DeviceState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.PoolEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.PoolEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
	}
}
