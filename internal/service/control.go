package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pool_automation/internal/logger"
	"pool_automation/internal/metrics"
	"pool_automation/internal/models"
	"pool_automation/internal/repository"
)

// DefaultSettleDelay is the pause between two presses of the same button;
// the panel drops a second press that arrives too quickly.
const DefaultSettleDelay = 3 * time.Second

// Command result labels.
const (
	resultOK       = "ok"
	resultNoop     = "noop"
	resultDisabled = "disabled"
	resultRejected = "rejected"
	resultBusy     = "busy"
	resultFailed   = "failed"
)

type ControlService struct {
	store       *StateStore
	panel       Panel
	eventRepo   repository.EventRepo
	metrics     *metrics.Metrics
	log         *logger.Logger
	settleDelay time.Duration
}

func NewControlService(store *StateStore, panel Panel, eventRepo repository.EventRepo, m *metrics.Metrics, log *logger.Logger, settleDelay time.Duration) *ControlService {
	return &ControlService{
		store:       store,
		panel:       panel,
		eventRepo:   eventRepo,
		metrics:     m,
		log:         log,
		settleDelay: settleDelay,
	}
}

// ChangeState plans cmd against the current state, updates the state to the
// intended result and presses the button as many times as the plan says.
// Only one command runs at a time; a concurrent call gets ErrCommandInFlight.
func (s *ControlService) ChangeState(ctx context.Context, cmd Command) (CommandResult, error) {
	if err := s.store.BeginCommand(); err != nil {
		s.metrics.CommandsTotal.WithLabelValues(attributeLabel(cmd.Attribute), resultBusy).Inc()
		return CommandResult{}, err
	}
	defer s.store.EndCommand()

	var (
		plan     PressPlan
		planErr  error
		disabled bool
	)
	s.store.Update(func(st *models.DeviceState, _ bool) {
		plan, planErr = Plan(*st, cmd)
		if planErr != nil {
			return
		}
		disabled = st.IsDisabled
		st.Message = plan.Message
		if !disabled && !plan.NoOp() {
			plan.Apply(st)
		}
	})
	if planErr != nil {
		s.metrics.CommandsTotal.WithLabelValues(attributeLabel(cmd.Attribute), resultRejected).Inc()
		s.log.Warnw("command_rejected", "attribute", cmd.Attribute, "state", cmd.State, "err", planErr)
		return CommandResult{}, planErr
	}

	res := CommandResult{Plan: plan, Disabled: disabled}
	attr := string(plan.Attribute)

	switch {
	case disabled:
		s.metrics.CommandsTotal.WithLabelValues(attr, resultDisabled).Inc()
		s.log.Warnw("command_skipped_disabled", "attribute", attr, "state", cmd.State)
		return res, nil
	case plan.NoOp():
		s.metrics.CommandsTotal.WithLabelValues(attr, resultNoop).Inc()
		s.log.Debugw("command_noop", "attribute", attr, "state", cmd.State)
		return res, nil
	}

	s.log.Infow("command_started", "attribute", attr, "state", cmd.State, "key", plan.Key, "presses", plan.Presses, "message", plan.Message)

	sent, err := s.press(ctx, plan)
	res.PressesSent = sent
	s.recordCommand(ctx, cmd, plan, sent, err)
	if err != nil {
		return res, err
	}
	return res, nil
}

// press sends the plan's key presses, waiting the settle delay in between.
// A failed press stops the sequence.
func (s *ControlService) press(ctx context.Context, plan PressPlan) (int, error) {
	sent := 0
	for i := 0; i < plan.Presses; i++ {
		if i > 0 {
			if err := sleepCtx(ctx, s.settleDelay); err != nil {
				return sent, fmt.Errorf("settle before press %d: %w", i+1, err)
			}
		}
		if err := s.panel.PressKey(ctx, plan.Key); err != nil {
			return sent, fmt.Errorf("press key %s: %w", plan.Key, err)
		}
		sent++
		s.metrics.KeyPressesTotal.WithLabelValues(plan.Key).Inc()
	}
	return sent, nil
}

func (s *ControlService) recordCommand(ctx context.Context, cmd Command, plan PressPlan, sent int, pressErr error) {
	attr := string(plan.Attribute)
	meta := map[string]any{
		"attribute":    attr,
		"state":        cmd.State,
		"key":          plan.Key,
		"presses":      plan.Presses,
		"presses_sent": sent,
	}
	ev := models.PoolEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventCommand,
		Description: plan.Message,
		Metadata:    meta,
	}
	if pressErr != nil {
		meta["error"] = pressErr.Error()
		ev.Type = models.EventCommandFailed
		s.metrics.CommandsTotal.WithLabelValues(attr, resultFailed).Inc()
		s.log.Errorw("command_failed", "attribute", attr, "presses_sent", sent, "err", pressErr)
	} else {
		s.metrics.CommandsTotal.WithLabelValues(attr, resultOK).Inc()
		s.log.Infow("command_done", "attribute", attr, "presses_sent", sent)
	}

	if err := s.eventRepo.Append(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Errorw("event_append_failed", "type", ev.Type, "err", err)
	}
}

// attributeLabel bounds the metric label to known attributes.
func attributeLabel(raw string) string {
	attr := Attribute(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := planners[attr]; !ok {
		return "unknown"
	}
	return string(attr)
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
