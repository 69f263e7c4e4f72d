package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/expense-tracker/internal/core/events"
)

type Service struct {
	store    *Store
	notifier *Notifier
	bus      *events.EventBus
	logger   *slog.Logger
}

func NewService(store *Store, notifier *Notifier, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		bus:      bus,
		logger:   logger,
	}
}

// SaveBudget stores the parsed input and re-synchronises every view.
func (s *Service) SaveBudget(ctx context.Context, input string) (*BudgetResponse, error) {
	amount, err := ParseAmount(input)
	if err != nil {
		s.logger.Warn("budget validation failed", "input", input, "error", err)
		return nil, err
	}

	if err := s.store.Set(ctx, amount); err != nil {
		s.logger.Error("failed to save budget", "error", err)
		return nil, err
	}
	s.publish(ctx, events.NewBudgetChangedEvent(amount, false))

	s.logger.Info("monthly budget saved", "amount", amount)
	resp, err := s.GetBudget(ctx)
	if err != nil {
		return nil, err
	}
	resp.Message = fmt.Sprintf("Monthly budget saved: %s", FormatAmount(amount))
	return resp, nil
}

// DeleteBudget removes the budget and re-arms the low-budget alert.
// Remaining balances then read as zero.
func (s *Service) DeleteBudget(ctx context.Context) (*BudgetResponse, error) {
	if err := s.store.Delete(ctx); err != nil {
		s.logger.Error("failed to delete budget", "error", err)
		return nil, err
	}
	if err := s.store.SetNotificationSent(ctx, false); err != nil {
		s.logger.Error("failed to reset budget alert", "error", err)
		return nil, err
	}
	s.publish(ctx, events.NewBudgetChangedEvent(0, true))

	s.logger.Info("monthly budget deleted")
	resp, err := s.GetBudget(ctx)
	if err != nil {
		return nil, err
	}
	resp.Message = "Monthly budget deleted."
	return resp, nil
}

func (s *Service) GetBudget(ctx context.Context) (*BudgetResponse, error) {
	amount, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	isSet, err := s.store.IsSet(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.notifier.State(ctx)
	if err != nil {
		return nil, err
	}
	return &BudgetResponse{
		Amount:    amount,
		Formatted: FormatAmount(amount),
		IsSet:     isSet,
		State:     state,
		Alerts:    events.AlertMessages(ctx),
	}, nil
}

// publish logs a failed synchronisation; the budget change is already stored.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.logger.Warn("failed to synchronize views", "error", err, "event", event.EventType())
	}
}
