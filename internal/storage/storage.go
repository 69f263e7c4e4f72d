package storage

import "context"

// Keys of the local key-value store.
const (
	KeyExpenses         = "tasks"
	KeyMonthlyBudget    = "monthlyBudget"
	KeyNotificationSent = "notificationSent"
	KeySearchResults    = "searchResults"
	KeyFilteredResults  = "filteredResults"
	KeyAllTransactions  = "allTransactions"
)

// KV is a string-keyed store of string values with last-write-wins semantics.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
