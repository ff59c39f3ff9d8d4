package service

import (
	"errors"
	"sync"
	"testing"

	"pool_automation/internal/models"
)

func TestStateStore_SnapshotIsDeepCopy(t *testing.T) {
	store := NewStateStore(stateWith(map[models.KeyID]models.LedState{models.PoolKey: models.LedOn}))

	snap := store.Snapshot()
	snap.SetKeyState(models.PoolKey, models.LedOff)

	if got := store.Snapshot().KeyState(models.PoolKey, models.LedOff); got != models.LedOn {
		t.Fatalf("store mutated through snapshot: %v", got)
	}
}

func TestStateStore_ZeroStateIsSeeded(t *testing.T) {
	store := NewStateStore(models.DeviceState{})
	st := store.Snapshot()
	if st.ID != 1 || st.KeyStates == nil {
		t.Fatalf("unexpected seed: %+v", st)
	}
}

func TestStateStore_CommandLifecycle(t *testing.T) {
	store := NewStateStore(models.NewDeviceState())

	if err := store.BeginCommand(); err != nil {
		t.Fatalf("BeginCommand: %v", err)
	}
	if err := store.BeginCommand(); !errors.Is(err, ErrCommandInFlight) {
		t.Fatalf("want ErrCommandInFlight, got %v", err)
	}

	var seen bool
	store.Update(func(st *models.DeviceState, inFlight bool) {
		seen = inFlight
		st.Message = "Lights: off -> on"
	})
	if !seen {
		t.Fatalf("Update must report the in-flight flag")
	}

	store.EndCommand()
	if store.InFlight() {
		t.Fatalf("flag not cleared")
	}
	if msg := store.Snapshot().Message; msg != "" {
		t.Fatalf("message not cleared: %q", msg)
	}
}

func TestStateStore_MergePollGeneration(t *testing.T) {
	store := NewStateStore(models.NewDeviceState())

	merge := func(gen uint64) bool {
		var current bool
		store.MergePoll(gen, func(st *models.DeviceState, keysCurrent bool) {
			current = keysCurrent
		})
		return current
	}

	gen := store.Generation()
	if !merge(gen) {
		t.Fatalf("idle store with unchanged generation must accept keys")
	}

	if err := store.BeginCommand(); err != nil {
		t.Fatalf("BeginCommand: %v", err)
	}
	if merge(store.Generation()) {
		t.Fatalf("keys accepted while a command is in flight")
	}
	store.EndCommand()

	if merge(gen) {
		t.Fatalf("keys accepted although a command started after the fetch")
	}
	if !merge(store.Generation()) {
		t.Fatalf("fresh generation must accept keys")
	}
}

func TestStateStore_ConcurrentBeginOnlyOneWins(t *testing.T) {
	store := NewStateStore(models.NewDeviceState())

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.BeginCommand() == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("want exactly one winner, got %d", wins)
	}
}
