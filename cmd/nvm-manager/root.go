package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"nvm-manager/internal/app"
	"nvm-manager/internal/catalog"
	configpkg "nvm-manager/internal/config"
	"nvm-manager/internal/engine"
	"nvm-manager/internal/logx"
	"nvm-manager/internal/nvm"
	themepkg "nvm-manager/internal/theme"
	"nvm-manager/internal/tui"
	"nvm-manager/internal/version"
)

// errReported marks a failure whose details were already written to the
// output; main exits 1 without printing it again.
var errReported = errors.New("operation failed")

type options struct {
	output     string
	tool       string
	catalogURL string
	verbose    bool

	runner  app.CommandRunner
	confirm func(version string) (bool, error)
	runTUI  func(tui.AppCallbacks) error
}

func defaultOptions() *options {
	return &options{
		runner:  app.ExecRunner{},
		confirm: confirmUninstall,
		runTUI:  tui.RunApp,
	}
}

// env is everything a command needs, built from config plus flag overrides.
type env struct {
	cfg     configpkg.Config
	client  nvm.Client
	fetcher catalog.Fetcher
	engine  *engine.Engine
	logger  *slog.Logger
	closer  io.Closer
}

func (e *env) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

func (o *options) loadConfig() (configpkg.Config, error) {
	cfg, err := configpkg.Load()
	if err != nil {
		return configpkg.Config{}, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(o.tool) != "" {
		cfg.Tool.Binary = o.tool
	}
	if strings.TrimSpace(o.catalogURL) != "" {
		cfg.Catalog.URL = o.catalogURL
	}
	return cfg, nil
}

func (o *options) level(cfg configpkg.Config) slog.Level {
	if o.verbose {
		return slog.LevelDebug
	}
	return logx.ParseLevel(cfg.Log.Level)
}

// newEnv wires the engine with a console logger on stderr.
func (o *options) newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return o.wire(cfg, logx.NewConsole(cmd.ErrOrStderr(), o.level(cfg)), nil), nil
}

// newTUIEnv logs to a file so the alt screen stays clean.
func (o *options) newTUIEnv() (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logx.Discard()
	var closer io.Closer
	if dir, err := app.LogsDir(); err == nil {
		if l, c, err := logx.NewFile(dir, o.level(cfg), time.Now()); err == nil {
			logger, closer = l, c
		}
	}
	return o.wire(cfg, logger, closer), nil
}

func (o *options) wire(cfg configpkg.Config, logger *slog.Logger, closer io.Closer) *env {
	client := nvm.NewClient(o.runner, cfg.Tool.Binary).WithTimeout(cfg.ToolTimeout())
	fetcher := catalog.NewFetcher(cfg.Catalog.URL, cfg.CatalogTimeout(), logger)
	return &env{
		cfg:     cfg,
		client:  client,
		fetcher: fetcher,
		engine:  engine.New(client, fetcher, logger),
		logger:  logger,
		closer:  closer,
	}
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "nvm-manager",
		Short:         "Browse, install, and switch Node.js versions managed by nvm",
		Long:          "nvm-manager lists the Node.js releases from the official index next to the versions nvm has installed, and installs, uninstalls, or switches versions through nvm.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, json, or yaml")
	root.PersistentFlags().StringVar(&opts.tool, "tool", "", "Version manager binary (overrides config)")
	root.PersistentFlags().StringVar(&opts.catalogURL, "catalog-url", "", "Release index URL or file (overrides config)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging on stderr")
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		switch opts.output {
		case formatTable, formatJSON, formatYAML:
			return nil
		default:
			return fmt.Errorf("invalid output format: %s (valid values: table, json, yaml)", opts.output)
		}
	}

	root.AddCommand(
		newLsCmd(opts),
		newAvailableCmd(opts),
		newInstallCmd(opts),
		newUninstallCmd(opts),
		newUseCmd(opts),
		newStatusCmd(opts),
		newServeCmd(opts),
		newMCPCmd(opts),
		newDoctorCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

func runApp(ctx context.Context, opts *options) error {
	e, err := opts.newTUIEnv()
	if err != nil {
		return err
	}
	defer e.Close()
	e.logger.Info("starting tui", "version", version.Value, "tool", e.cfg.Tool.Binary, "catalog", e.cfg.Catalog.URL)

	return opts.runTUI(tui.AppCallbacks{
		ListInstalled: func() engine.InstalledResult {
			return e.engine.ListInstalled(ctx)
		},
		ListAvailable: func() engine.AvailableResult {
			return e.engine.ListAvailable(ctx)
		},
		Install: func(v string) engine.ActionResult {
			return e.engine.Install(ctx, v)
		},
		Uninstall: func(v string) engine.ActionResult {
			return e.engine.Uninstall(ctx, v)
		},
		Switch: func(v string) engine.ActionResult {
			return e.engine.Switch(ctx, v)
		},
		MessageDuration: e.cfg.MessageDuration(),
		Version:         version.Value,
		Theme:           resolveUITheme(e.cfg, e.logger),
	})
}

// resolveUITheme applies config color overrides; invalid overrides fall back
// to the default palette.
func resolveUITheme(cfg configpkg.Config, logger *slog.Logger) tui.UITheme {
	palette, err := themepkg.WithOverrides(cfg.Theme.Colors)
	if err != nil {
		logger.Warn("ignoring theme overrides", "error", err)
	}
	return tui.ThemeFromPalette(palette)
}

func confirmUninstall(v string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Uninstall Node.js %s?", v)).
				Affirmative("Uninstall").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithOutput(os.Stderr)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}
