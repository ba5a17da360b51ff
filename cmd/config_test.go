package cmd

import (
	"flag"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env
	t.Setenv("CPT_PRICE_POLICY", "reset")
	t.Setenv("CPT_FETCH_WORKERS", "8")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error = %v", err)
	}
	want := &Config{
		PriceURL:     "https://api.coingecko.com/api/v3",
		PriceTimeout: 10 * time.Second,
		PricePolicy:  "reset",
		FetchWorkers: 8,
		ExportFile:   "crypto_portfolio.xlsx",
		GeminiModel:  "gemini-2.5-flash",
		GeminiAPIKey: "secret",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Flags(t *testing.T) {
	cfg := testConfig()
	f := flag.NewFlagSet("cpt", flag.ContinueOnError)
	cfg.RegisterFlags(f)
	if err := f.Parse([]string{"-price-policy", "reset", "-export-file", "out.xlsx", "shell"}); err != nil {
		t.Fatal(err)
	}
	if cfg.PricePolicy != "reset" || cfg.ExportFile != "out.xlsx" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if !cfg.Plain || cfg.FetchWorkers != 2 {
		t.Errorf("flags changed unset values: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		c := testConfig()
		c.PriceTimeout = time.Second
		return c
	}
	if err := valid().Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}
	for name, modify := range map[string]func(*Config){
		"policy":  func(c *Config) { c.PricePolicy = "forever" },
		"workers": func(c *Config) { c.FetchWorkers = 0 },
		"timeout": func(c *Config) { c.PriceTimeout = 0 },
	} {
		c := valid()
		modify(c)
		if err := c.Validate(); err == nil {
			t.Errorf("Validate() with invalid %s, want an error", name)
		}
	}
}
