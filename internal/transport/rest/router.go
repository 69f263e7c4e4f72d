package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-tracker/api"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/insights"
	"github.com/frahmantamala/expense-tracker/internal/transport/middleware"
	"github.com/frahmantamala/expense-tracker/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Expense  *expense.Handler
	Budget   *budget.Handler
	Insights *insights.Handler
	Category *category.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(nil))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// views share one store; requests are served one at a time
		r.Group(func(vr chi.Router) {
			vr.Use(middleware.Serialize)
			vr.Use(middleware.CollectEvents)
			vr.Use(middleware.AsOf(expense.ParseDate))

			if handlers.Insights != nil {
				vr.Get("/home", handlers.Insights.GetHome)
				vr.Get("/insights", handlers.Insights.GetInsights)
				vr.Get("/insights/chart.png", handlers.Insights.GetChart)
			}

			if handlers.Expense != nil {
				vr.Route("/expenses", func(er chi.Router) {
					er.Get("/", handlers.Expense.ListExpenses)
					er.Post("/", handlers.Expense.CreateExpense)
					er.Post("/search", handlers.Expense.SearchExpenses)
					er.Post("/filter", handlers.Expense.FilterExpenses)
					er.Get("/{id}", handlers.Expense.GetExpense)
				})
				vr.Get("/categories/{category}", handlers.Expense.GetCategoryDetail)
			}

			if handlers.Category != nil {
				vr.Get("/categories", handlers.Category.GetCategories)
			}

			if handlers.Budget != nil {
				vr.Route("/budget", func(br chi.Router) {
					br.Get("/", handlers.Budget.GetBudget)
					br.Put("/", handlers.Budget.SaveBudget)
					br.Delete("/", handlers.Budget.DeleteBudget)
				})
			}
		})
	})
}
