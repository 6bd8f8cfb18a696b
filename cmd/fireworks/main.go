// Package main runs the fireworks demo.
//
// Space launches a mortar from the bottom center, a mouse click launches one
// from the pointer, p pauses, f toggles full-screen and q or Escape quits.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ge211/config"
	"github.com/lixenwraith/ge211/engine"
	"github.com/lixenwraith/ge211/logging"
)

var (
	// configFile is set by the --config flag
	configFile string

	settings = config.NewViper()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fireworks",
	Short: "Launch fireworks in the terminal",
	Long: `Fireworks draws mortars that burst into colored stars, with a pop
for every burst. Settings come from ge211.toml (or --config), GE211_*
environment variables and the flags below.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFireworks,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default: ./ge211.toml or ~/.config/ge211/ge211.toml)")
	flags.String("log-level", "warn", "debug, info, warn, error or fatal")
	flags.String("log-file", "", "write logs to this file")
	flags.Bool("mute", false, "disable audio")
	flags.Uint64("seed", 0, "random seed; 0 seeds from the clock")

	for key, flag := range map[string]string{
		config.KeyLogLevel:   "log-level",
		config.KeyLogFile:    "log-file",
		config.KeyRandomSeed: "seed",
	} {
		if err := settings.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func runFireworks(cmd *cobra.Command, _ []string) error {
	if mute, _ := cmd.Flags().GetBool("mute"); mute {
		settings.Set(config.KeyAudioEnabled, false)
	}

	cfg, err := config.Load(settings, configFile)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log, closeLog, err := logging.New(logging.Options{Level: level, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = engine.Run(ctx, NewFireworks(log), cfg, engine.WithLogger(log))
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return nil
	default:
		logging.Fatal(log, "fireworks stopped", "error", err)
		return err
	}
}
