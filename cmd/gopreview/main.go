package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/philipparndt/gopreview/internal/config"
	"github.com/philipparndt/gopreview/pkg/loader"
	"github.com/philipparndt/gopreview/pkg/scene"
	"github.com/philipparndt/gopreview/version"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gopreview",
	Short: "Preview CAD documents from the command line",
	Long: `gopreview loads 3MF, STL, OpenSCAD and YAML CAD documents, builds a lit
scene with a camera and lets you inspect, render and pick objects.`,
	Version:           version.GetFullVersion(),
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/gopreview/config.toml)")
}

// setup loads the config file and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			slog.Debug("no config directory", "error", err)
		}
	}

	if path != "" {
		loaded, err := config.LoadOrDefault(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Resolve(config.Flags{Verbose: verbose})

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("config loaded", "file", path)
	return nil
}

// cfgFlags carries per-command size flags into the config
func cfgFlags(width, height int) config.Flags {
	return config.Flags{Verbose: verbose, Width: width, Height: height}
}

// loadScene loads a file and builds its scene, exiting on failure
func loadScene(ctx context.Context, filename string) *scene.Scene {
	doc, err := loader.LoadWithOptions(ctx, filename, loader.Options{Document: cfg.DocumentOptions()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", filename, err)
		os.Exit(1)
	}
	return scene.Build(doc)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
