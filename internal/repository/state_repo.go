package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pool_automation/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	poolStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO pool_state (id, key_states, pool_temp, pool_temp_as_of, spa_temp, spa_temp_as_of,
			air_temp, heater_auto, disabled, line_one, line_two, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			key_states=excluded.key_states,
			pool_temp=excluded.pool_temp,
			pool_temp_as_of=excluded.pool_temp_as_of,
			spa_temp=excluded.spa_temp,
			spa_temp_as_of=excluded.spa_temp_as_of,
			air_temp=excluded.air_temp,
			heater_auto=excluded.heater_auto,
			disabled=excluded.disabled,
			line_one=excluded.line_one,
			line_two=excluded.line_two,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, key_states, pool_temp, pool_temp_as_of, spa_temp, spa_temp_as_of,
			air_temp, heater_auto, disabled, line_one, line_two, updated_at
		FROM pool_state WHERE id=?
	`
)

// marshalKeyStates converts the key table to a JSON object string.
func marshalKeyStates(keys map[models.KeyID]models.LedState) (string, error) {
	if keys == nil {
		keys = map[models.KeyID]models.LedState{}
	}
	b, err := json.Marshal(keys)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalKeyStates parses a JSON object string into a key table.
func unmarshalKeyStates(s string) (map[models.KeyID]models.LedState, error) {
	keys := map[models.KeyID]models.LedState{}
	if s == "" {
		return keys, nil
	}
	if err := json.Unmarshal([]byte(s), &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

// Save updates or inserts the pool_state row (id always 1). Message is
// transient and is not persisted.
func (r *StateSQLite) Save(ctx context.Context, state models.DeviceState) error {
	keysJSON, err := marshalKeyStates(state.KeyStates)
	if err != nil {
		return fmt.Errorf("marshal key states: %w", err)
	}

	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err = r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		poolStateRowID,
		keysJSON,
		state.PoolTemperature,
		nullableTime(state.PoolTemperatureAsOf),
		state.SpaTemperature,
		nullableTime(state.SpaTemperatureAsOf),
		state.AirTemperature,
		nullableBool(state.IsHeaterAutoControl),
		state.IsDisabled,
		state.DisplayLineOne,
		state.DisplayLineTwo,
		tsUTC,
	)
	return err
}

// Load fetches the single pool_state row (id=1).
func (r *StateSQLite) Load(ctx context.Context) (models.DeviceState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, poolStateRowID)

	var (
		s                 models.DeviceState
		keysJSON          string
		poolAsOf, spaAsOf sql.NullTime
		heaterAuto        sql.NullBool
		lineOne, lineTwo  sql.NullString
		poolTemp, spaTemp sql.NullFloat64
		airTemp           sql.NullFloat64
	)
	if err := row.Scan(
		&s.ID,
		&keysJSON,
		&poolTemp,
		&poolAsOf,
		&spaTemp,
		&spaAsOf,
		&airTemp,
		&heaterAuto,
		&s.IsDisabled,
		&lineOne,
		&lineTwo,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DeviceState{}, nil // no state yet
		}
		return models.DeviceState{}, err
	}

	keys, err := unmarshalKeyStates(keysJSON)
	if err != nil {
		return models.DeviceState{}, fmt.Errorf("unmarshal key states: %w", err)
	}
	s.KeyStates = keys
	s.PoolTemperature = poolTemp.Float64
	s.PoolTemperatureAsOf = timePtr(poolAsOf)
	s.SpaTemperature = spaTemp.Float64
	s.SpaTemperatureAsOf = timePtr(spaAsOf)
	s.AirTemperature = airTemp.Float64
	if heaterAuto.Valid {
		v := heaterAuto.Bool
		s.IsHeaterAutoControl = &v
	}
	s.DisplayLineOne = lineOne.String
	s.DisplayLineTwo = lineTwo.String
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
