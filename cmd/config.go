package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strconv"
	"time"

	"github.com/etnz/cryptofolio"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the application settings. Values are read from the environment
// (and an optional .env file) and can be overridden by the global flags.
type Config struct {
	PriceURL     string        `env:"CPT_PRICE_URL" env-default:"https://api.coingecko.com/api/v3" env-description:"price API root"`
	PriceAPIKey  string        `env:"CPT_PRICE_API_KEY" env-description:"CoinGecko demo API key"`
	PriceTimeout time.Duration `env:"CPT_PRICE_TIMEOUT" env-default:"10s" env-description:"timeout of a price lookup"`
	PricePolicy  string        `env:"CPT_PRICE_POLICY" env-default:"keep" env-description:"keep or reset fetched prices when wallets change"`
	FetchWorkers int           `env:"CPT_FETCH_WORKERS" env-default:"4" env-description:"concurrent lookups of fetch -all"`
	ExportFile   string        `env:"CPT_EXPORT_FILE" env-default:"crypto_portfolio.xlsx" env-description:"default export file"`
	Plain        bool          `env:"CPT_PLAIN" env-default:"false" env-description:"print raw markdown"`
	Verbose      bool          `env:"CPT_VERBOSE" env-default:"false" env-description:"print diagnostic logs"`
	GeminiModel  string        `env:"CPT_GEMINI_MODEL" env-default:"gemini-2.5-flash" env-description:"model used by assist"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY" env-description:"Gemini API key used by assist"`
}

// Environment variables exported to extensions.
const (
	EnvPriceURL    = "CPT_PRICE_URL"
	EnvPricePolicy = "CPT_PRICE_POLICY"
	EnvExportFile  = "CPT_EXPORT_FILE"
	EnvVerbose     = "CPT_VERBOSE"
)

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env file: %w", err)
	}
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read configuration from the environment: %w", err)
	}
	return &cfg, nil
}

// RegisterFlags declares the global flags, using the current values as defaults.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.PriceURL, "price-url", c.PriceURL, "Root of the CoinGecko compatible price API")
	f.StringVar(&c.PriceAPIKey, "price-api-key", c.PriceAPIKey, "CoinGecko demo API key (optional)")
	f.DurationVar(&c.PriceTimeout, "price-timeout", c.PriceTimeout, "Timeout of a single price lookup")
	f.StringVar(&c.PricePolicy, "price-policy", c.PricePolicy, "What happens to fetched prices when wallets change: keep or reset")
	f.IntVar(&c.FetchWorkers, "fetch-workers", c.FetchWorkers, "Maximum number of concurrent lookups for 'fetch -all'")
	f.StringVar(&c.ExportFile, "export-file", c.ExportFile, "Default file written by 'export'")
	f.BoolVar(&c.Plain, "plain", c.Plain, "Print raw markdown instead of rendering it for the terminal")
	f.BoolVar(&c.Verbose, "v", c.Verbose, "Print diagnostic logs")
	f.StringVar(&c.GeminiModel, "gemini-model", c.GeminiModel, "Gemini model used by 'assist'")
}

// Validate checks the values that cannot be checked by their type.
func (c *Config) Validate() error {
	if _, err := cryptofolio.ParsePricePolicy(c.PricePolicy); err != nil {
		return err
	}
	if c.FetchWorkers < 1 {
		return fmt.Errorf("fetch workers must be at least 1, got %d", c.FetchWorkers)
	}
	if c.PriceTimeout <= 0 {
		return fmt.Errorf("price timeout must be positive, got %v", c.PriceTimeout)
	}
	return nil
}

// Env returns the settings an extension needs, as environment variables.
func (c *Config) Env() []string {
	return []string{
		EnvPriceURL + "=" + c.PriceURL,
		EnvPricePolicy + "=" + c.PricePolicy,
		EnvExportFile + "=" + c.ExportFile,
		EnvVerbose + "=" + strconv.FormatBool(c.Verbose),
	}
}

// SetupLogging discards diagnostic logs unless verbose.
func SetupLogging(c *Config) {
	log.SetFlags(0)
	log.SetPrefix("cpt: ")
	if !c.Verbose {
		log.SetOutput(io.Discard)
	}
}
