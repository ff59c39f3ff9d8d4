package service

import (
	"context"
	"fmt"
	"time"

	"pool_automation/internal/logger"
	"pool_automation/internal/metrics"
	"pool_automation/internal/models"
	"pool_automation/internal/repository"
	"pool_automation/internal/webstr"
)

// DefaultPollInterval is how often the panel status page is fetched.
const DefaultPollInterval = 5 * time.Second

// Poll result labels.
const (
	pollOK         = "ok"
	pollFetchError = "fetch_error"
	pollParseError = "parse_error"
	pollSaveError  = "save_error"
)

// PollerService keeps the StateStore in sync with the panel.
type PollerService struct {
	store     *StateStore
	panel     Panel
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	metrics   *metrics.Metrics
	log       *logger.Logger
	now       func() time.Time

	// only touched by the polling goroutine
	offline bool
}

func NewPollerService(store *StateStore, panel Panel, stateRepo repository.StateRepo, eventRepo repository.EventRepo, m *metrics.Metrics, log *logger.Logger) *PollerService {
	return &PollerService{
		store:     store,
		panel:     panel,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		metrics:   m,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run polls once immediately and then every interval until ctx is canceled.
func (s *PollerService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *PollerService) tick(ctx context.Context) {
	if err := s.PollOnce(ctx); err != nil && ctx.Err() == nil {
		s.log.Errorw("poll_failed", "err", err)
	}
}

// PollOnce fetches the status page, decodes it and merges it into the state.
// The key table is left alone when a command ran at any point during the
// fetch: the page may show an intermediate or pre-command key pattern.
func (s *PollerService) PollOnce(ctx context.Context) error {
	gen := s.store.Generation()
	body, err := s.panel.Status(ctx)
	if err != nil {
		s.pollFailed(ctx, pollFetchError, err)
		return fmt.Errorf("fetch status: %w", err)
	}
	resp, err := webstr.ParseResponse(body)
	if err != nil {
		s.pollFailed(ctx, pollParseError, err)
		return fmt.Errorf("parse status: %w", err)
	}
	keys := webstr.Decode(resp.RawLeds)
	now := s.now()

	var (
		before      models.DeviceState
		keysApplied bool
	)
	after := s.store.MergePoll(gen, func(st *models.DeviceState, keysCurrent bool) {
		before = st.Clone()
		if keysCurrent {
			st.KeyStates = keys
			keysApplied = true
		}
		mergePollResponse(st, resp, now)
	})

	s.pollRecovered(ctx)
	s.recordTransitions(ctx, before, after, keysApplied)
	s.observe(after)

	if err := s.stateRepo.Save(ctx, after); err != nil {
		s.metrics.PollsTotal.WithLabelValues(pollSaveError).Inc()
		return fmt.Errorf("save state: %w", err)
	}
	s.metrics.PollsTotal.WithLabelValues(pollOK).Inc()
	s.log.Debugw("poll_ok", "mode", after.Mode().String(), "filter", after.FilterMode().String(), "keys_applied", keysApplied)
	return nil
}

// mergePollResponse copies everything but the key table from resp into st.
// Temperatures not shown on this page keep their previous value.
func mergePollResponse(st *models.DeviceState, resp models.PollResponse, now time.Time) {
	st.IsDisabled = resp.IsConfigLocked || resp.IsServiceMode
	st.DisplayLineOne = resp.LineOne
	st.DisplayLineTwo = resp.LineTwo
	if resp.AirTemp != nil {
		st.AirTemperature = float64(*resp.AirTemp)
	}
	if resp.PoolTemp != nil {
		st.PoolTemperature = float64(*resp.PoolTemp)
		asOf := now
		st.PoolTemperatureAsOf = &asOf
	}
	if resp.SpaTemp != nil {
		st.SpaTemperature = float64(*resp.SpaTemp)
		asOf := now
		st.SpaTemperatureAsOf = &asOf
	}
	if resp.IsHeaterAutoControl != nil {
		auto := *resp.IsHeaterAutoControl
		st.IsHeaterAutoControl = &auto
	}
	st.UpdatedAt = now
}

func (s *PollerService) pollFailed(ctx context.Context, result string, err error) {
	s.metrics.PollsTotal.WithLabelValues(result).Inc()
	s.metrics.ConnectionFailure.Set(1)
	if result != pollFetchError || s.offline {
		return
	}
	s.offline = true
	s.appendEvent(ctx, models.PoolEvent{
		Type:        models.EventConnectionLost,
		Description: "Panel unreachable",
		Metadata:    map[string]any{"error": err.Error()},
	})
}

func (s *PollerService) pollRecovered(ctx context.Context) {
	s.metrics.ConnectionFailure.Set(0)
	if !s.offline {
		return
	}
	s.offline = false
	s.appendEvent(ctx, models.PoolEvent{
		Type:        models.EventConnectionRestored,
		Description: "Panel reachable again",
	})
}

// recordTransitions logs changes the panel reports on its own, e.g. a mode
// switched at the panel itself or a menu being opened.
func (s *PollerService) recordTransitions(ctx context.Context, before, after models.DeviceState, keysApplied bool) {
	if keysApplied {
		if from, to := before.Mode(), after.Mode(); from != to {
			s.appendEvent(ctx, models.PoolEvent{
				Type:        models.EventModeChange,
				Description: fmt.Sprintf("Mode: %s -> %s", from, to),
				Metadata:    map[string]any{"from": from.String(), "to": to.String()},
			})
		}
		if from, to := before.FilterMode(), after.FilterMode(); from != to {
			s.appendEvent(ctx, models.PoolEvent{
				Type:        models.EventFilterChange,
				Description: fmt.Sprintf("Speed: %s -> %s", from, to),
				Metadata:    map[string]any{"from": from.String(), "to": to.String()},
			})
		}
	}
	if before.IsDisabled != after.IsDisabled {
		ev := models.PoolEvent{
			Type:        models.EventUnlocked,
			Description: "Panel unlocked",
		}
		if after.IsDisabled {
			ev.Type = models.EventLocked
			ev.Description = "Panel locked: " + after.DisplayLineOne + " " + after.DisplayLineTwo
		}
		s.appendEvent(ctx, ev)
	}
}

func (s *PollerService) appendEvent(ctx context.Context, ev models.PoolEvent) {
	ev.OccurredAt = s.now()
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		s.log.Errorw("event_append_failed", "type", ev.Type, "err", err)
		return
	}
	s.log.Infow("state_transition", "type", ev.Type, "description", ev.Description)
}

func (s *PollerService) observe(st models.DeviceState) {
	m := s.metrics
	m.LastRefreshTimestamp.Set(float64(st.UpdatedAt.Unix()))
	m.AirTemperature.Set(st.AirTemperature)
	if st.PoolTemperatureAsOf != nil {
		m.WaterTemperature.WithLabelValues("pool").Set(st.PoolTemperature)
	}
	if st.SpaTemperatureAsOf != nil {
		m.WaterTemperature.WithLabelValues("spa").Set(st.SpaTemperature)
	}
	m.Disabled.Set(metrics.BoolGauge(st.IsDisabled))
	for key, name := range models.KeyLegend() {
		m.KeyState.WithLabelValues(string(key), name).Set(float64(st.KeyState(key, models.LedNoKey)))
	}
}
