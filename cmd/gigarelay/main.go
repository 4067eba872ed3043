// cmd/gigarelay/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tamzrod/giga-relay/internal/config"
	"github.com/tamzrod/giga-relay/internal/logging"
	"github.com/tamzrod/giga-relay/internal/relay"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gigarelay",
		Short: "Interactive command relay for a Giga motor controller",
		Long: "gigarelay reads JSON commands from stdin, forwards them to the controller over a\n" +
			"serial link and prints replies and throttled telemetry.\n\n" +
			"  q, /q     quit\n" +
			"  r, /r     reconnect\n" +
			"  /t=N      send a generated READ Motor command with N entries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	config.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gigarelay: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg := &config.Config{}
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return err
	}
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
	}

	if err := config.ApplyFlags(cfg, cmd.Flags()); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	// --------------------
	// Logging
	// --------------------

	lc := cfg.Relay.Log
	if err := logging.Init(logging.Options{
		Name:    "gigarelay",
		Dir:     lc.Dir,
		Rotate:  lc.Rotate(),
		Verbose: lc.Verbose || lc.Dir == "",
		Debug:   lc.Debug,
	}); err != nil {
		return fmt.Errorf("logging init failed: %w", err)
	}
	defer logging.Close()

	// --------------------
	// Build + run
	// --------------------

	sup, closeRelay, err := relay.Build(cfg, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("relay build failed: %w", err)
	}
	defer closeRelay()

	_, err = sup.Run()
	return err
}
