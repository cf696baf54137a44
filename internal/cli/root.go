// Package cli holds the plotview and plotshot commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"plotview/app"
	"plotview/graph/session"
	"plotview/hal"
	"plotview/hal/hostwin"
	"plotview/internal/config"
)

// NewRootCmd returns the plotview command. Flags can also be set through
// PLOTVIEW_* environment variables (PLOTVIEW_LOG_LEVEL=debug).
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("plotview")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "plotview",
		Short: "Interactive function plotter",
		Long: heredoc.Doc(`
			Plot a function of x in a window. Drag with the primary button to pan,
			use the wheel to zoom around the pointer, Home to reset the view,
			F1 to toggle segment highlighting and Esc to quit.
		`),
		Example: heredoc.Doc(`
			# Open the plotter with the defaults
			$ plotview

			# Use a config file and debug logging
			$ plotview --config ~/.plotview.yaml --log-level debug

			# Render 120 frames without a window
			$ plotview --headless --frames 120
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlotter(cmd, v)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", config.DefaultPath, "Config file (YAML); defaults are used when it does not exist")
	pf.String("log-level", "", "Log level override (debug, info, warn, error)")

	f := cmd.Flags()
	f.Bool("headless", false, "Run without a window")
	f.Int("hz", 60, "Frame rate")
	f.Uint64("frames", 0, "Stop after N frames (0 = run until quit)")
	f.Int("scale", 1, "Window scale factor")

	v.BindPFlags(pf)
	v.BindPFlags(f)

	cmd.AddCommand(newConfigCmd(v), newVersionCmd(), newShotCmd(v))
	return cmd
}

// Execute runs the root command and maps a clean quit to success.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "plotview:", err)
		return 1
	}
	return 0
}

// loadConfig reads the --config file and applies flag and env overrides.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	path, err := homedir.Expand(v.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("config path: %w", err)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if lvl := v.GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runPlotter(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	hostCfg := hal.HostConfig{
		Width:     cfg.Viewport.Width,
		Height:    cfg.Viewport.Height,
		LogOutput: cmd.ErrOrStderr(),
		LogLevel:  cfg.LogLevel(),
	}
	newApp := func(h *hal.Host) (func() error, error) {
		return app.New(h, cfg)
	}

	if v.GetBool("headless") {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Host:   hostCfg,
			Hz:     v.GetInt("hz"),
			Frames: v.GetUint64("frames"),
		})
	} else {
		err = hostwin.RunWindow(hostwin.Config{
			Host:  hostCfg,
			Scale: v.GetInt("scale"),
			TPS:   v.GetInt("hz"),
		}, newApp)
	}
	if errors.Is(err, session.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
