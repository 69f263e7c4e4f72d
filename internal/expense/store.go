package expense

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/storage"
)

// Store owns the persisted record sequence and the transient result slots.
// Save is the only write path for the sequence and announces every write on the bus.
type Store struct {
	kv     storage.KV
	bus    *events.EventBus
	logger *slog.Logger
}

func NewStore(kv storage.KV, bus *events.EventBus, logger *slog.Logger) *Store {
	return &Store{
		kv:     kv,
		bus:    bus,
		logger: logger,
	}
}

// Load returns the persisted records, most recent first. Missing or
// unreadable data yields an empty sequence.
func (s *Store) Load(ctx context.Context) ([]Record, error) {
	return s.LoadSlot(ctx, storage.KeyExpenses)
}

func (s *Store) Save(ctx context.Context, records []Record) error {
	if err := s.write(ctx, storage.KeyExpenses, records); err != nil {
		return err
	}
	if s.bus == nil {
		return nil
	}
	// the write stands even when a view fails to refresh
	if err := s.bus.PublishSync(ctx, events.NewExpensesSavedEvent(len(records))); err != nil {
		s.logger.Warn("failed to synchronize views", "error", err, "count", len(records))
	}
	return nil
}

// Add places record at the front of records and persists the result.
func (s *Store) Add(ctx context.Context, record Record, records []Record) ([]Record, error) {
	updated := make([]Record, 0, len(records)+1)
	updated = append(updated, record)
	updated = append(updated, records...)

	if err := s.Save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) LoadSlot(ctx context.Context, key string) ([]Record, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found || raw == "" {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("stored records are unreadable, treating as empty", "key", key, "error", err)
		return []Record{}, nil
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// SaveSlot writes a transient sequence. It does not trigger view synchronisation.
func (s *Store) SaveSlot(ctx context.Context, key string, records []Record) error {
	return s.write(ctx, key, records)
}

func (s *Store) write(ctx context.Context, key string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Clear removes the record sequence and every result slot.
func (s *Store) Clear(ctx context.Context) error {
	for _, key := range []string{storage.KeyExpenses, storage.KeySearchResults, storage.KeyFilteredResults, storage.KeyAllTransactions} {
		if err := s.kv.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}
