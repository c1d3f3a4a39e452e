package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/timvw/muxer/internal/config"
	"github.com/timvw/muxer/internal/history"
	"github.com/timvw/muxer/internal/launcher"
	"github.com/timvw/muxer/internal/mux"
	telem "github.com/timvw/muxer/internal/otel"
	"github.com/timvw/muxer/internal/picker"
	"github.com/timvw/muxer/internal/rc"
	"github.com/timvw/muxer/internal/sshconf"
	"github.com/timvw/muxer/internal/target"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

var tracer = otel.Tracer("muxer")

var (
	// Global flags.
	flagMux       string
	flagRC        string
	flagSSHConfig string
	flagTheme     string

	// Root-only flags.
	flagWindow    bool
	flagPrint     bool
	flagNoHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "muxer [query]",
	Short: "Create or switch tmux sessions from project directories and ssh hosts",
	Long: `muxer fuzzy-picks a target from the directories listed in ~/.muxer.rc
and the Host entries of ~/.ssh/config, then creates or switches to the
matching tmux session. ssh targets open a session running "ssh <host>".

With a single matching candidate the picker is skipped. An optional query
argument pre-filters the candidates and seeds the picker input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", envOrDefault("MUXER_MUX", ""), "terminal multiplexer: tmux (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&flagRC, "rc", "", "path to the directory list file (default: ~/.muxer.rc)")
	rootCmd.PersistentFlags().StringVar(&flagSSHConfig, "ssh-config", "", "path to the ssh client config (default: ~/.ssh/config)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "color theme: dark, light")

	rootCmd.Flags().BoolVarP(&flagWindow, "window", "w", false, "open a window in the current session instead of a session")
	rootCmd.Flags().BoolVar(&flagPrint, "print", false, "print the picked target instead of launching it")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "skip frecency ranking and do not record this launch")
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	telem.Version = Version
	tel, err := telem.Init(ctx, telem.Config{Endpoint: cfg.OTELEndpoint, Headers: cfg.OTELHeaders})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}
	var metrics *telem.Metrics
	if tel != nil {
		metrics = tel.Metrics
		defer tel.Shutdown(ctx)
	}

	targets, err := loadTargets(ctx, cfg, query, metrics)
	if err != nil {
		return err
	}

	var hist *history.Store
	if !cfg.DisableHistory && !flagNoHistory {
		hist = openHistory(cfg)
		if hist != nil {
			defer hist.Close()
			if cfg.Sort == "frecency" {
				targets = hist.Rank(ctx, targets)
			}
		}
	}

	prompt := "SESSION > "
	mode := launcher.ModeSession
	if flagWindow {
		prompt = "WINDOW > "
		mode = launcher.ModeWindow
	}

	picked, err := pick(ctx, targets, prompt, query, cfg.Theme)
	if errors.Is(err, picker.ErrNoSelection) {
		metrics.RecordCancellation(ctx)
		fmt.Fprintln(os.Stderr, "nothing chosen")
		return nil
	}
	if err != nil {
		return err
	}

	if flagPrint {
		fmt.Println(picked.Display)
		return nil
	}

	m, err := getMultiplexer()
	if err != nil {
		return err
	}

	// Record before launching: attach blocks until the user detaches.
	if hist != nil {
		if err := hist.Record(ctx, picked); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	metrics.RecordLaunch(ctx, string(picked.Kind), mode.String())

	l := &launcher.Launcher{
		Mux:            m,
		InsideTmux:     mux.InsideTmux(),
		DefaultCommand: cfg.CommandArgs,
	}
	return launchWithSpan(ctx, l, picked, mode)
}

// loadConfig loads the config and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if flagRC != "" {
		cfg.RCPath = flagRC
	}
	if flagSSHConfig != "" {
		cfg.SSHConfigPath = flagSSHConfig
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	return cfg, nil
}

// loadTargets loads and merges directory and ssh candidates. A single
// failing source degrades to a warning; both failing is fatal.
func loadTargets(ctx context.Context, cfg *config.Config, query string, metrics *telem.Metrics) ([]target.Target, error) {
	ctx, span := tracer.Start(ctx, "load_targets",
		trace.WithAttributes(attribute.String("query", query)))
	defer span.End()

	dirLoader := &rc.Loader{Path: cfg.RCPath, Query: query}
	dirs, dirWarns, dirErr := dirLoader.Load()
	for _, w := range dirWarns {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}

	var hosts []string
	var sshErr error
	if !cfg.DisableSSH {
		sshLoader := &sshconf.Loader{Path: cfg.SSHConfigPath, Query: query}
		var sshWarns []error
		hosts, sshWarns, sshErr = sshLoader.Load()
		for _, w := range sshWarns {
			fmt.Fprintf(os.Stderr, "warning: %v\n", w)
		}
	}

	if dirErr != nil && sshErr != nil {
		return nil, multierr.Append(dirErr, sshErr)
	}
	for _, err := range []error{dirErr, sshErr} {
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	metrics.RecordTargets(ctx, "dir", len(dirs))
	metrics.RecordTargets(ctx, "ssh", len(hosts))
	span.SetAttributes(
		attribute.Int("targets.dirs", len(dirs)),
		attribute.Int("targets.hosts", len(hosts)),
	)

	return target.Merge(dirs, target.FromHosts(hosts, cfg.SSHPrefix)), nil
}

// pick runs the selector inside a span.
func pick(ctx context.Context, targets []target.Target, prompt, query, theme string) (target.Target, error) {
	_, span := tracer.Start(ctx, "pick",
		trace.WithAttributes(attribute.Int("candidates", len(targets))))
	defer span.End()

	picked, err := picker.Choose(targets, picker.Options{
		Prompt: prompt,
		Query:  query,
		Theme:  picker.ThemeByName(theme),
	})
	if err == nil {
		span.SetAttributes(attribute.String("picked", picked.Display))
	}
	return picked, err
}

// launchWithSpan launches the target inside a span.
func launchWithSpan(ctx context.Context, l *launcher.Launcher, t target.Target, mode launcher.Mode) error {
	ctx, span := tracer.Start(ctx, "launch",
		trace.WithAttributes(
			attribute.String("target.kind", string(t.Kind)),
			attribute.String("session.name", t.SessionName()),
			attribute.String("launch.mode", mode.String()),
		))
	defer span.End()
	return l.Launch(ctx, t, mode)
}

// openHistory opens the history store. Failures degrade to a warning.
func openHistory(cfg *config.Config) *history.Store {
	path := cfg.HistoryPath
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
			return nil
		}
		path = p
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
		return nil
	}
	return store
}

// getMultiplexer returns the configured or auto-detected multiplexer.
func getMultiplexer() (mux.Multiplexer, error) {
	if flagMux != "" {
		return mux.FromName(flagMux)
	}
	return mux.Detect()
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
