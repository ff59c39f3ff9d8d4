package service

import (
	"context"
	"sync"
	"time"

	"pool_automation/internal/logger"
	"pool_automation/internal/metrics"
	"pool_automation/internal/models"
)

// ---- Test doubles ----

type fakeStateRepo struct {
	mu      sync.Mutex
	loadRes models.DeviceState
	loadErr error
	saveErr error
	saves   []models.DeviceState
}

func (f *fakeStateRepo) Load(ctx context.Context) (models.DeviceState, error) {
	return f.loadRes, f.loadErr
}

func (f *fakeStateRepo) Save(ctx context.Context, s models.DeviceState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, s)
	return f.saveErr
}

func (f *fakeStateRepo) saved() []models.DeviceState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.DeviceState(nil), f.saves...)
}

type fakeEventRepo struct {
	mu        sync.Mutex
	appendErr error
	events    []models.PoolEvent

	listRes  []models.PoolEvent
	listErr  error
	gotFrom  time.Time
	gotTo    time.Time
	gotType  string
	listCall int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.PoolEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.appendErr
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.PoolEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCall++
	f.gotFrom, f.gotTo, f.gotType = from, to, typ
	return f.listRes, f.listErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

// fakePanel answers status polls with body and records key presses.
type fakePanel struct {
	mu        sync.Mutex
	body      string
	statusErr error
	statusN   int
	pressErr  error
	presses   []string
	pressedAt []time.Time

	// when set, PressKey blocks until release is closed
	entered chan struct{}
	release chan struct{}

	// runs inside Status before the page is returned
	onStatus func()
}

func (p *fakePanel) Status(ctx context.Context) (string, error) {
	if p.onStatus != nil {
		p.onStatus()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusN++
	return p.body, p.statusErr
}

func (p *fakePanel) PressKey(ctx context.Context, key string) error {
	if p.release != nil {
		p.entered <- struct{}{}
		<-p.release
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pressErr != nil {
		return p.pressErr
	}
	p.presses = append(p.presses, key)
	p.pressedAt = append(p.pressedAt, time.Now())
	return nil
}

func (p *fakePanel) pressed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.presses...)
}

func (p *fakePanel) setStatus(body string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.body, p.statusErr = body, err
}

func (p *fakePanel) statusCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusN
}

func newTestControl(st models.DeviceState, panel *fakePanel, settle time.Duration) (*ControlService, *StateStore, *fakeEventRepo) {
	store := NewStateStore(st)
	events := &fakeEventRepo{}
	return NewControlService(store, panel, events, metrics.New(), logger.Nop(), settle), store, events
}

func stateWith(keys map[models.KeyID]models.LedState) models.DeviceState {
	st := models.NewDeviceState()
	for k, v := range keys {
		st.SetKeyState(k, v)
	}
	return st
}

func statusBody(lineOne, lineTwo, leds string) string {
	return "<html><body>" + lineOne + " xxx " + lineTwo + " xxx " + leds + " xxx </body></html>"
}
