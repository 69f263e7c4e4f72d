package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/expense-tracker/api"
	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/insights"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/internal/transport/rest"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newHTTPServerCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP server",
		Long:  `Start the HTTP server exposing the tracker views as a JSON API`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				opts.deps.Config.Server.Port = port
			}
			return startHTTPServer(cmd.Context(), opts.deps)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default http_server.port)")
	return cmd
}

// NewRouter wires every handler onto a fresh chi router.
func NewRouter(deps *Dependencies) (*chi.Mux, error) {
	sqlDB, err := deps.DB.DB()
	if err != nil {
		return nil, err
	}

	base := transport.NewBaseHandler(deps.Logger)
	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlDB, rest.Handlers{
		Expense:  expense.NewHandler(base, deps.Expenses),
		Budget:   budget.NewHandler(base, deps.Budget),
		Insights: insights.NewHandler(base, deps.Sync, deps.Config.Chart),
		Category: category.NewHandler(base, deps.Categories),
	}, deps.Logger)
	return router, nil
}

func startHTTPServer(ctx context.Context, deps *Dependencies) error {
	if _, err := api.Load(ctx); err != nil {
		return fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	router, err := NewRouter(deps)
	if err != nil {
		return err
	}

	cfg := deps.Config.Server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Logger.Info("starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		deps.Logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := internal.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	deps.Logger.Info("server stopped")
	return nil
}
