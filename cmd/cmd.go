package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootOptions struct {
	configDir string
	dbPath    string
	asOf      string

	deps *Dependencies
}

// NewRootCommand builds the command tree. Each call returns an independent tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "expense-tracker",
		Short:         "Expense Tracker",
		Long:          `Record personal expenses, track a monthly budget and review spending by category.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.deps == nil {
				return nil
			}
			return opts.deps.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "directory holding config.yml")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite file to use instead of storage.path")
	rootCmd.PersistentFlags().StringVar(&opts.asOf, "as-of", "", "treat this date (2006-01-02) as today")

	rootCmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newSearchCmd(opts),
		newFilterCmd(opts),
		newBudgetCmd(opts),
		newHomeCmd(opts),
		newInsightsCmd(opts),
		newCategoryCmd(opts),
		newCategoriesCmd(opts),
		newChartCmd(opts),
		newRefreshCmd(opts),
		newSeedCmd(opts),
		newMigrateCmd(opts),
		newHTTPServerCmd(opts),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, ErrorMessage(err))
		os.Exit(1)
	}
}

// ErrorMessage renders err for the user; application errors carry their field details.
func ErrorMessage(err error) string {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr.GetDetailedMessage()
	}
	return err.Error()
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(o.configDir)
	if err != nil {
		return err
	}
	if o.dbPath != "" {
		cfg.Storage.Path = o.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("error validating config: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.asOf != "" {
		now, ok := expense.ParseDate(o.asOf)
		if !ok {
			return fmt.Errorf("invalid --as-of date %q", o.asOf)
		}
		ctx = internal.ContextWithNow(ctx, now)
	}
	cmd.SetContext(ctx)

	deps, err := initializeDependencies(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	o.deps = deps
	return nil
}

func loadConfig(path string) (*internal.Config, error) {
	// a .env file is optional
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, internal.DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// setDefaults registers scalar keys so TRACKER_* variables apply without a config file.
func setDefaults(v *viper.Viper, cfg internal.Config) {
	v.SetDefault("http_server.port", cfg.Server.Port)
	v.SetDefault("http_server.read_header_timeout", cfg.Server.ReadHeaderTimeout)
	v.SetDefault("http_server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("http_server.idle_timeout", cfg.Server.IdleTimeout)
	v.SetDefault("http_server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("http_server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.migrations_table", cfg.Storage.MigrationsTable)
	v.SetDefault("budget.alert_threshold", cfg.Budget.AlertThreshold)
	v.SetDefault("budget.alert_when_exhausted", cfg.Budget.AlertWhenExhausted)
	v.SetDefault("budget.currency", cfg.Budget.Currency)
	v.SetDefault("categories.fallback_image", cfg.Categories.FallbackImage)
	v.SetDefault("chart.width", cfg.Chart.Width)
	v.SetDefault("chart.height", cfg.Chart.Height)
	v.SetDefault("observability.logging.level", cfg.Observability.Logging.Level)
	v.SetDefault("observability.logging.format", cfg.Observability.Logging.Format)
}
