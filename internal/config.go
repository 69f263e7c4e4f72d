package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Budget        BudgetConfig        `mapstructure:"budget"`
	Categories    CategoriesConfig    `mapstructure:"categories"`
	Chart         ChartConfig         `mapstructure:"chart"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	// Path of the SQLite file holding the key-value entries. ":memory:" is accepted.
	Path            string `mapstructure:"path"`
	MigrationsTable string `mapstructure:"migrations_table"`
}

type BudgetConfig struct {
	AlertThreshold     float64 `mapstructure:"alert_threshold"`
	AlertWhenExhausted bool    `mapstructure:"alert_when_exhausted"`
	Currency           string  `mapstructure:"currency"`
}

type CategoryImage struct {
	Category string `mapstructure:"category"`
	Image    string `mapstructure:"image"`
}

type CategoriesConfig struct {
	Labels        []string        `mapstructure:"labels"`
	Images        []CategoryImage `mapstructure:"images"`
	FallbackImage string          `mapstructure:"fallback_image"`
}

type ChartConfig struct {
	Width  int      `mapstructure:"width"`
	Height int      `mapstructure:"height"`
	Colors []string `mapstructure:"colors"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			IdleTimeout:       60 * time.Second,
			WriteTimeout:      10 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Storage: StorageConfig{
			Path:            "expenses.db",
			MigrationsTable: "schema_migrations",
		},
		Budget: BudgetConfig{
			AlertThreshold: 0.2,
			Currency:       "€",
		},
		Categories: CategoriesConfig{
			Labels: []string{"Food", "Entertainment", "Transport", "Groceries"},
			Images: []CategoryImage{
				{Category: "Food", Image: "img/food.png"},
				{Category: "Entertainment", Image: "img/entertainment.png"},
				{Category: "Transport", Image: "img/transport.png"},
				{Category: "Groceries", Image: "img/groceries.png"},
			},
			FallbackImage: "img/default.png",
		},
		Chart: ChartConfig{
			Width:  512,
			Height: 512,
			Colors: []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40", "#8A2BE2", "#CCCCCC"},
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{Level: "warn", Format: "text"},
		},
	}
}

// ApplyDefaults fills list settings left empty by the config file.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if len(c.Categories.Labels) == 0 {
		c.Categories.Labels = d.Categories.Labels
	}
	if len(c.Categories.Images) == 0 {
		c.Categories.Images = d.Categories.Images
	}
	if c.Categories.FallbackImage == "" {
		c.Categories.FallbackImage = d.Categories.FallbackImage
	}
	if len(c.Chart.Colors) == 0 {
		c.Chart.Colors = d.Chart.Colors
	}
	if c.Storage.MigrationsTable == "" {
		c.Storage.MigrationsTable = d.Storage.MigrationsTable
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if err := c.Budget.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("budget config: %v", err))
	}

	if err := c.Categories.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("categories config: %v", err))
	}

	if err := c.Chart.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("chart config: %v", err))
	}

	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return errors.New("path is required")
	}
	return nil
}

func (c *BudgetConfig) Validate() error {
	if c.AlertThreshold <= 0 || c.AlertThreshold >= 1 {
		return fmt.Errorf("alert_threshold must be between 0 and 1, got %v", c.AlertThreshold)
	}
	return nil
}

func (c *CategoriesConfig) Validate() error {
	if c.FallbackImage == "" {
		return errors.New("fallback_image is required")
	}
	for _, img := range c.Images {
		if img.Category == "" || img.Image == "" {
			return errors.New("every image entry needs a category and an image")
		}
	}
	return nil
}

func (c *ChartConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("width and height must be positive")
	}
	if len(c.Colors) == 0 {
		return errors.New("at least one color is required")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}
