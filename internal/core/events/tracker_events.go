package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExpensesSaved = "expenses.saved"
	EventTypeBudgetChanged = "budget.changed"
	EventTypeBudgetAlert   = "budget.alert"
	EventTypeRefresh       = "views.refresh"
)

type ExpensesSavedEvent struct {
	BaseEvent
	Count int `json:"count"`
}

func NewExpensesSavedEvent(count int) *ExpensesSavedEvent {
	return &ExpensesSavedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpensesSaved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"count": count,
			},
		},
		Count: count,
	}
}

type BudgetChangedEvent struct {
	BaseEvent
	Amount  float64 `json:"amount"`
	Deleted bool    `json:"deleted"`
}

func NewBudgetChangedEvent(amount float64, deleted bool) *BudgetChangedEvent {
	return &BudgetChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBudgetChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"amount":  amount,
				"deleted": deleted,
			},
		},
		Amount:  amount,
		Deleted: deleted,
	}
}

// BudgetAlertEvent is the user-facing low-budget warning.
type BudgetAlertEvent struct {
	BaseEvent
	Remaining float64 `json:"remaining"`
	Budget    float64 `json:"budget"`
	Message   string  `json:"message"`
}

func NewBudgetAlertEvent(remaining, budget float64, message string) *BudgetAlertEvent {
	return &BudgetAlertEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBudgetAlert,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"remaining": remaining,
				"budget":    budget,
				"message":   message,
			},
		},
		Remaining: remaining,
		Budget:    budget,
		Message:   message,
	}
}

// NewRefreshEvent asks the view synchronizer to recompute without a mutation.
func NewRefreshEvent(source string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeRefresh,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"source": source,
		},
	}
}
