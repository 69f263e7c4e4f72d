package budget

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/storage"
	"github.com/shopspring/decimal"
)

const notificationSentValue = "true"

// Store persists the monthly budget scalar and the low-budget notification flag.
type Store struct {
	kv     storage.KV
	logger *slog.Logger
}

func NewStore(kv storage.KV, logger *slog.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Get returns the saved budget, or 0 when none is saved or it cannot be read.
func (s *Store) Get(ctx context.Context) (float64, error) {
	raw, found, err := s.kv.Get(ctx, storage.KeyMonthlyBudget)
	if err != nil {
		return 0, fmt.Errorf("failed to read budget: %w", err)
	}
	if !found {
		return 0, nil
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Warn("stored budget is unreadable, treating as zero", "value", raw, "error", err)
		return 0, nil
	}
	return amount.InexactFloat64(), nil
}

// IsSet reports whether a budget has been saved.
func (s *Store) IsSet(ctx context.Context) (bool, error) {
	_, found, err := s.kv.Get(ctx, storage.KeyMonthlyBudget)
	return found, err
}

// Set stores amount as a two-decimal string, e.g. "1000.00".
func (s *Store) Set(ctx context.Context, amount float64) error {
	return s.kv.Set(ctx, storage.KeyMonthlyBudget, FormatAmount(amount))
}

func (s *Store) Delete(ctx context.Context) error {
	return s.kv.Remove(ctx, storage.KeyMonthlyBudget)
}

func (s *Store) NotificationSent(ctx context.Context) (bool, error) {
	raw, found, err := s.kv.Get(ctx, storage.KeyNotificationSent)
	if err != nil {
		return false, fmt.Errorf("failed to read notification flag: %w", err)
	}
	return found && raw == notificationSentValue, nil
}

// SetNotificationSent stores "true", or removes the flag.
func (s *Store) SetNotificationSent(ctx context.Context, sent bool) error {
	if sent {
		return s.kv.Set(ctx, storage.KeyNotificationSent, notificationSentValue)
	}
	return s.kv.Remove(ctx, storage.KeyNotificationSent)
}

// ParseAmount reads user input such as "1000", "99.5" or "12,50".
func ParseAmount(input string) (float64, error) {
	input = strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	if input == "" {
		return 0, internal.ErrInvalidBudget
	}
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return 0, internal.NewValidationFieldError("amount", fmt.Sprintf("%q is not a number", input), internal.ErrCodeInvalidBudget)
	}
	if amount.IsNegative() {
		return 0, internal.NewValidationFieldError("amount", "amount must not be negative", internal.ErrCodeInvalidBudget)
	}
	v := amount.Round(2).InexactFloat64()
	if math.IsInf(v, 0) {
		return 0, internal.ErrInvalidBudget
	}
	return v, nil
}

func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
