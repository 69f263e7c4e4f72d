package budget

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
)

type State string

const (
	StateQuiet   State = "quiet"
	StateAlerted State = "alerted"
)

type FlagStore interface {
	NotificationSent(ctx context.Context) (bool, error)
	SetNotificationSent(ctx context.Context, sent bool) error
}

// Notifier raises the low-budget warning once per downward crossing of the
// threshold and re-arms when the remaining budget recovers above it.
type Notifier struct {
	flags              FlagStore
	bus                *events.EventBus
	threshold          float64
	alertWhenExhausted bool
	logger             *slog.Logger
}

func NewNotifier(flags FlagStore, bus *events.EventBus, cfg internal.BudgetConfig, logger *slog.Logger) *Notifier {
	return &Notifier{
		flags:              flags,
		bus:                bus,
		threshold:          cfg.AlertThreshold,
		alertWhenExhausted: cfg.AlertWhenExhausted,
		logger:             logger,
	}
}

func (n *Notifier) Message() string {
	return fmt.Sprintf("Warning: Your remaining budget is less than %d%%!", int(math.Round(n.threshold*100)))
}

// Evaluate applies one transition of the latch and reports whether an alert fired.
// A remaining budget of exactly zero does not alert unless alert_when_exhausted is set.
func (n *Notifier) Evaluate(ctx context.Context, remaining, budget float64) (bool, error) {
	sent, err := n.flags.NotificationSent(ctx)
	if err != nil {
		return false, err
	}

	limit := budget * n.threshold
	low := remaining <= limit && (remaining > 0 || (n.alertWhenExhausted && budget > 0))

	switch {
	case low && !sent:
		if err := n.flags.SetNotificationSent(ctx, true); err != nil {
			return false, err
		}
		n.logger.Info("budget alert raised", "remaining", remaining, "budget", budget)
		if n.bus != nil {
			if err := n.bus.PublishSync(ctx, events.NewBudgetAlertEvent(remaining, budget, n.Message())); err != nil {
				return true, err
			}
		}
		return true, nil
	case remaining > limit && sent:
		n.logger.Debug("budget recovered above threshold, re-arming alert", "remaining", remaining, "budget", budget)
		return false, n.flags.SetNotificationSent(ctx, false)
	}
	return false, nil
}

func (n *Notifier) State(ctx context.Context) (State, error) {
	sent, err := n.flags.NotificationSent(ctx)
	if err != nil {
		return "", err
	}
	if sent {
		return StateAlerted, nil
	}
	return StateQuiet, nil
}
