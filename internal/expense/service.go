package expense

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/storage"
)

// ImageResolver maps a category to its display image.
type ImageResolver interface {
	ImageFor(category string) string
}

// Service handles expense business logic
type Service struct {
	store  *Store
	images ImageResolver
	logger *slog.Logger
}

func NewService(store *Store, images ImageResolver, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		images: images,
		logger: logger,
	}
}

// AddExpense validates dto and records it at the front of the sequence.
func (s *Service) AddExpense(ctx context.Context, dto CreateExpenseDTO) (*Record, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err)
		return nil, err
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load expenses", "error", err)
		return nil, err
	}

	record := NewRecord(dto, s.images.ImageFor(dto.Category))
	if _, err := s.store.Add(ctx, record, records); err != nil {
		s.logger.Error("failed to add expense", "error", err, "expense_id", record.ID)
		return nil, err
	}

	s.logger.Info("expense recorded",
		"expense_id", record.ID,
		"category", record.Category,
		"amount", record.Amount)
	return &record, nil
}

// Expenses returns the canonical sequence.
func (s *Service) Expenses(ctx context.Context) ([]Record, error) {
	return s.store.Load(ctx)
}

// ListExpenses renders the chosen source grouped by recency and snapshots it
// for the category detail view.
func (s *Service) ListExpenses(ctx context.Context, source Source) (*ListResponse, error) {
	records, err := s.recordsFor(ctx, source)
	if err != nil {
		s.logger.Error("failed to load list source", "error", err, "source", source)
		return nil, err
	}

	if err := s.store.SaveSlot(ctx, storage.KeyAllTransactions, records); err != nil {
		s.logger.Error("failed to snapshot listed transactions", "error", err)
		return nil, err
	}

	return &ListResponse{
		Source: source,
		Count:  len(records),
		Groups: GroupByRecency(records, internal.NowFromContext(ctx)),
	}, nil
}

// Search writes matching records to the search slot. Nothing is written on error.
func (s *Service) Search(ctx context.Context, query string) ([]Record, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := Search(records, query)
	if err != nil {
		s.logger.Info("search produced no result", "query", query, "error", err)
		return nil, err
	}

	if err := s.store.SaveSlot(ctx, storage.KeySearchResults, matches); err != nil {
		s.logger.Error("failed to store search results", "error", err)
		return nil, err
	}
	s.logger.Info("search completed", "query", query, "matches", len(matches))
	return matches, nil
}

// Filter writes records satisfying dto to the filter slot. Nothing is written on error.
func (s *Service) Filter(ctx context.Context, dto FilterDTO) ([]Record, error) {
	criteria, err := dto.ToCriteria()
	if err != nil {
		s.logger.Warn("filter validation failed", "error", err)
		return nil, err
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := Filter(records, criteria)
	if err != nil {
		s.logger.Info("filter produced no result", "categories", dto.Categories)
		return nil, err
	}

	if err := s.store.SaveSlot(ctx, storage.KeyFilteredResults, matches); err != nil {
		s.logger.Error("failed to store filter results", "error", err)
		return nil, err
	}
	s.logger.Info("filter completed", "matches", len(matches))
	return matches, nil
}

// GetExpense resolves ref as a record ID, or as a position in source for
// older links that carried an index.
func (s *Service) GetExpense(ctx context.Context, ref string, source Source) (*Record, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, internal.ErrExpenseNotFound
	}

	records, err := s.recordsFor(ctx, source)
	if err != nil {
		return nil, err
	}

	if record := findByID(records, ref); record != nil {
		return record, nil
	}

	if idx, err := strconv.Atoi(ref); err == nil && idx >= 0 && idx < len(records) {
		return &records[idx], nil
	}

	if source != SourceAll {
		// IDs are stable across sources; positions are not
		all, err := s.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		if record := findByID(all, ref); record != nil {
			return record, nil
		}
	}
	return nil, internal.ErrExpenseNotFound
}

func findByID(records []Record, id string) *Record {
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}

// CategoryDetail summarises one category for the current month, grouped by day.
// It reads the last listed transactions and falls back to the full sequence.
func (s *Service) CategoryDetail(ctx context.Context, category string) (*CategoryDetail, error) {
	if strings.TrimSpace(category) == "" {
		return nil, internal.ErrCategoryRequired
	}

	records, err := s.store.LoadSlot(ctx, storage.KeyAllTransactions)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		if records, err = s.store.Load(ctx); err != nil {
			return nil, err
		}
	}

	now := internal.NowFromContext(ctx)
	var matching []Record
	for _, r := range records {
		if r.Category == category && r.InMonth(now.Month(), now.Year()) {
			matching = append(matching, r)
		}
	}

	return &CategoryDetail{
		Category: category,
		Image:    s.images.ImageFor(category),
		Month:    now.Month().String(),
		Year:     now.Year(),
		Total:    Sum(matching),
		Count:    len(matching),
		Groups:   GroupByDay(matching),
	}, nil
}

func (s *Service) recordsFor(ctx context.Context, source Source) ([]Record, error) {
	switch source {
	case SourceSearch:
		return s.store.LoadSlot(ctx, storage.KeySearchResults)
	case SourceFiltered:
		return s.store.LoadSlot(ctx, storage.KeyFilteredResults)
	default:
		return s.store.Load(ctx)
	}
}
