package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/insights"
	"github.com/frahmantamala/expense-tracker/internal/storage"
	"github.com/frahmantamala/expense-tracker/internal/storage/sqlite"
	"github.com/frahmantamala/expense-tracker/internal/transport/cli"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config     *internal.Config
	DB         *gorm.DB
	KV         storage.KV
	Logger     *slog.Logger
	Bus        *events.EventBus
	Categories *category.Service

	ExpenseStore *expense.Store
	Expenses     *expense.Service

	BudgetStore *budget.Store
	Notifier    *budget.Notifier
	Budget      *budget.Service

	Sync     *insights.Synchronizer
	Renderer *cli.Renderer
}

func initializeDependencies(ctx context.Context, cfg *internal.Config, out, errOut io.Writer) (*Dependencies, error) {
	log := logger.Init(logger.Options{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
		Output: errOut,
	})

	db, err := sqlite.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	kv := sqlite.NewKVRepository(db)
	bus := events.NewEventBus(log)
	categories := category.NewService(cfg.Categories, log)

	expenseStore := expense.NewStore(kv, bus, log)
	budgetStore := budget.NewStore(kv, log)
	notifier := budget.NewNotifier(budgetStore, bus, cfg.Budget, log)

	sync := insights.NewSynchronizer(expenseStore, budgetStore, notifier, categories, cfg.Chart.Colors, log)
	sync.Subscribe(bus)
	bus.Collect(events.EventTypeBudgetAlert)

	return &Dependencies{
		Config:       cfg,
		DB:           db,
		KV:           kv,
		Logger:       log,
		Bus:          bus,
		Categories:   categories,
		ExpenseStore: expenseStore,
		Expenses:     expense.NewService(expenseStore, categories, log),
		BudgetStore:  budgetStore,
		Notifier:     notifier,
		Budget:       budget.NewService(budgetStore, notifier, bus, log),
		Sync:         sync,
		Renderer:     cli.NewRenderer(out, cfg.Budget.Currency),
	}, nil
}

// AttachAlerts prints budget alerts on the terminal as they are raised.
func (d *Dependencies) AttachAlerts() {
	d.Bus.Subscribe(events.EventTypeBudgetAlert, d.Renderer.AlertHandler())
}

// AttachTerminal also re-prints the remaining balance whenever a write
// re-synchronises the views.
func (d *Dependencies) AttachTerminal() {
	d.AttachAlerts()
	d.Sync.Mount("summary", d.Renderer.SummaryView())
}

func (d *Dependencies) Close() error {
	return sqlite.Close(d.DB)
}
