package handlers

import (
	"context"
	"sync"
	"time"

	"pool_automation/internal/models"
	"pool_automation/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockControl struct {
	res     service.CommandResult
	err     error
	lastCmd service.Command
	calls   int
}

func (m *mockControl) ChangeState(ctx context.Context, cmd service.Command) (service.CommandResult, error) {
	m.calls++
	m.lastCmd = cmd
	return m.res, m.err
}

type mockMonitoring struct {
	mu    sync.Mutex
	state models.DeviceState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.DeviceState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone(), m.err
}

func (m *mockMonitoring) set(st models.DeviceState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
}

type mockDiagnostics struct {
	lastRaw string
}

func (m *mockDiagnostics) DecodeKeys(raw string) service.KeyReport {
	m.lastRaw = raw
	return service.NewDiagnosticsService().DecodeKeys(raw)
}

type mockEventLog struct {
	resp     []models.PoolEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.PoolEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, nil)
	return h.InitRoutes()
}
