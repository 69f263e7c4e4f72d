package insights

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/expense"
)

type RecordLoader interface {
	Load(ctx context.Context) ([]expense.Record, error)
}

type BudgetReader interface {
	Get(ctx context.Context) (float64, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, remaining, budget float64) (bool, error)
}

// View is a mounted surface that re-renders from each fresh snapshot.
type View interface {
	Render(ctx context.Context, snap Snapshot) error
}

type ViewFunc func(ctx context.Context, snap Snapshot) error

func (f ViewFunc) Render(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

type mountedView struct {
	name string
	view View
}

// Synchronizer recomputes the snapshot after every write, re-evaluates the
// budget notifier and re-renders every mounted view.
type Synchronizer struct {
	records  RecordLoader
	budget   BudgetReader
	notifier Evaluator
	images   ImageResolver
	palette  []string
	logger   *slog.Logger

	mu    sync.Mutex
	views []mountedView
	last  *Snapshot
}

func NewSynchronizer(records RecordLoader, budget BudgetReader, notifier Evaluator, images ImageResolver, palette []string, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		records:  records,
		budget:   budget,
		notifier: notifier,
		images:   images,
		palette:  palette,
		logger:   logger,
	}
}

// Subscribe makes every write event trigger a refresh.
func (s *Synchronizer) Subscribe(bus *events.EventBus) {
	handler := func(ctx context.Context, event events.Event) error {
		_, err := s.Refresh(ctx)
		return err
	}
	bus.Subscribe(events.EventTypeExpensesSaved, handler)
	bus.Subscribe(events.EventTypeBudgetChanged, handler)
	bus.Subscribe(events.EventTypeRefresh, handler)
}

// Mount registers view under name, replacing any view of the same name.
func (s *Synchronizer) Mount(name string, view View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.views {
		if s.views[i].name == name {
			s.views[i].view = view
			return
		}
	}
	s.views = append(s.views, mountedView{name: name, view: view})
}

func (s *Synchronizer) Unmount(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.views {
		if s.views[i].name == name {
			s.views = append(s.views[:i], s.views[i+1:]...)
			return
		}
	}
}

func (s *Synchronizer) Refresh(ctx context.Context) (Snapshot, error) {
	records, err := s.records.Load(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load expenses: %w", err)
	}
	budget, err := s.budget.Get(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load budget: %w", err)
	}

	snap := BuildSnapshot(records, budget, internal.NowFromContext(ctx), s.images, s.palette)

	if s.notifier != nil {
		fired, err := s.notifier.Evaluate(ctx, snap.Remaining, snap.Budget)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to evaluate budget alert: %w", err)
		}
		snap.AlertRaised = fired
	}

	s.mu.Lock()
	s.last = &snap
	views := append([]mountedView(nil), s.views...)
	s.mu.Unlock()

	for _, mv := range views {
		if mv.view == nil {
			continue
		}
		if err := mv.view.Render(ctx, snap); err != nil {
			s.logger.Error("view failed to render", "view", mv.name, "error", err)
			return snap, fmt.Errorf("render %s: %w", mv.name, err)
		}
	}

	s.logger.Debug("views synchronized",
		"views", len(views),
		"remaining", snap.Remaining,
		"spent", snap.Spent)
	return snap, nil
}

// Last returns the most recent snapshot, if any refresh has run.
func (s *Synchronizer) Last() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Snapshot{}, false
	}
	return *s.last, true
}
