// Package cmd implements the cpt command line application to track a crypto
// portfolio.
package cmd

import (
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander, cfg *Config) {
	c.Register(&shellCmd{cfg: cfg}, "portfolio")
	c.Register(&priceCmd{cfg: cfg}, "portfolio")
	c.Register(&topicCmd{plain: &cfg.Plain}, "documentation")
}
