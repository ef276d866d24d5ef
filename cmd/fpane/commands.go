package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/fpane/internal/app"
	"github.com/dshills/fpane/internal/config"
	"github.com/dshills/fpane/internal/logging"
	"github.com/dshills/fpane/internal/marks"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	StateDir   string
	NoWatch    bool
	Hidden     bool
}

func addRootFlags(cmd *cobra.Command, o *rootOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.ConfigPath, "config", "c", "", "Path to configuration file (default "+config.DefaultConfigFile+")")
	flags.StringVar(&o.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&o.LogFile, "log-file", "", "Log file (default <state-dir>/fpane.log)")
	flags.StringVar(&o.StateDir, "state-dir", "", "Directory for marks and logs (default "+config.DefaultStateDir+")")
	flags.BoolVar(&o.NoWatch, "no-watch", false, "Do not reload when the directory changes")
	flags.BoolVarP(&o.Hidden, "hidden", "a", false, "Show hidden files")
}

// loadConfig reads the configuration with explicitly set flags on top.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := make(map[string]any)
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		overrides["log.level"] = o.LogLevel
	}
	if flags.Changed("log-file") {
		overrides["log.file"] = o.LogFile
	}
	if flags.Changed("state-dir") {
		overrides["marks.state_dir"] = o.StateDir
	}
	if flags.Changed("no-watch") {
		overrides["watch.enabled"] = !o.NoWatch
	}
	if flags.Changed("hidden") {
		overrides["browser.show_hidden"] = o.Hidden
	}
	return config.Load(config.Options{File: o.ConfigPath, Overrides: overrides})
}

func newRootCommand() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "fpane [dir]",
		Short: "A terminal file pane with visual range selection.",
		Example: `
fpane
fpane ~/src --hidden
FPANE_LOG_LEVEL=debug fpane /var/log
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runPane(cfg, dir)
		},
	}
	addRootFlags(cmd, o)

	addVersion(cmd)
	addMarks(cmd, o)
	return cmd
}

func runPane(cfg *config.Config, dir string) error {
	log, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	application, err := app.New(app.Options{Dir: dir, Config: cfg, Logger: log})
	if err != nil {
		return err
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			_ = application.Shutdown() // loop may already be gone
		}
	}()

	return application.Run()
}

// openLog opens the log file in append mode. The terminal belongs to the
// pane, so nothing is logged to stderr.
func openLog(cfg *config.Config) (*logging.Logger, func(), error) {
	path := cfg.LogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, app.NewOperationError("create", filepath.Dir(path), err).WithContext("log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, app.NewOperationError("open", path, err).WithContext("log")
	}
	log := logging.New(logging.Config{Level: cfg.Log.Level, Output: f, Prefix: "fpane"})
	return log, func() { _ = f.Close() }, nil
}

func addVersion(topLevel *cobra.Command) {
	shortened := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the fpane version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout(), shortened)
		},
	}
	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	topLevel.AddCommand(cmd)
}

func printVersion(w io.Writer, short bool) {
	if short {
		fmt.Fprintln(w, version)
		return
	}
	fmt.Fprintf(w, "fpane %s\n", version)
	fmt.Fprintf(w, "Commit: %s\n", commit)
	fmt.Fprintf(w, "Built: %s\n", date)
}

func addMarks(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "marks",
		Short: "List the persisted marks.",
		Example: `
fpane marks
fpane marks --state-dir /tmp/fpane
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := marks.Open(filepath.Join(cfg.Marks.StateDir, "marks"))
			if err != nil {
				return err
			}
			printMarks(cmd.OutOrStdout(), store.All())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func printMarks(w io.Writer, all []marks.Named) {
	for _, m := range all {
		fmt.Fprintf(w, "%c  %s\n", m.Rune, filepath.Join(m.Origin, m.Name))
	}
}
