package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/slzatz/pexlite/screen"
	"github.com/slzatz/pexlite/terminal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pexlite: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "pexlite",
		Short:         "Terminal task dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCommandConfig(cmd, configPath)
			if err != nil {
				return err
			}
			return runDashboard(cfg, cmd.OutOrStdout())
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "config file (.toml or .yaml); default ~/.config/pexlite/config.toml")
	f.String("history-db", "", "sqlite file that records runs")
	f.Bool("cgo-sqlite", false, "use the cgo sqlite driver when this build has it")

	rf := cmd.Flags()
	rf.String("provider", "", "task source: proc or mock")
	rf.String("proc-root", "", "procfs mount point")
	rf.Duration("timeout", 0, "longest wait for input before redrawing")
	rf.Duration("refresh", 0, "interval between task snapshots")
	rf.Int("max-tasks", 0, "capacity guard on a snapshot")
	rf.Bool("debug", false, "start with the debug panel open")
	rf.String("log-file", "", "rotating log file; empty string discards logs")
	rf.Bool("no-history", false, "do not record this run")

	cmd.AddCommand(newHistoryCmd(&configPath), newVersionCmd())
	return cmd
}

func loadCommandConfig(cmd *cobra.Command, configPath string) (Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath()
	}
	cfg, err := LoadConfig(configPath, explicit)
	if err != nil {
		return cfg, err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// applyFlags overrides cfg with the flags the user actually typed.
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}
	set("provider", func() (e error) { cfg.Provider, e = flags.GetString("provider"); return })
	set("proc-root", func() (e error) { cfg.ProcRoot, e = flags.GetString("proc-root"); return })
	set("timeout", func() (e error) { cfg.Timeout, e = flags.GetDuration("timeout"); return })
	set("refresh", func() (e error) { cfg.Refresh, e = flags.GetDuration("refresh"); return })
	set("max-tasks", func() (e error) { cfg.MaxTasks, e = flags.GetInt("max-tasks"); return })
	set("debug", func() (e error) { cfg.Debug, e = flags.GetBool("debug"); return })
	set("log-file", func() (e error) { cfg.LogFile, e = flags.GetString("log-file"); return })
	set("history-db", func() (e error) { cfg.HistoryDB, e = flags.GetString("history-db"); return })
	set("no-history", func() (e error) { cfg.NoHistory, e = flags.GetBool("no-history"); return })
	set("cgo-sqlite", func() (e error) { cfg.CgoSQLite, e = flags.GetBool("cgo-sqlite"); return })
	return err
}

// runDashboard owns the terminal for the length of the loop. The summary and
// any error are written only after the terminal is back in its original mode.
func runDashboard(cfg Config, out io.Writer) error {
	logger, closer, err := newLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	started := time.Now()
	stats, reason, loopErr := runLoop(cfg, logger)
	if stats != nil {
		fmt.Fprint(out, stats.Summary())
	}

	if !cfg.NoHistory && cfg.HistoryDB != "" && stats != nil {
		recordRun(cfg, logger, RunRecord{
			Started:  started,
			Ended:    time.Now(),
			Provider: cfg.Provider,
			Reason:   reason,
			Stats:    *stats,
		})
	}
	return loopErr
}

func runLoop(cfg Config, logger *log.Logger) (*Stats, string, error) {
	scr, err := screen.Open(os.Stdin, os.Stdout, cfg.Theme)
	if err != nil {
		return nil, "", err
	}
	defer scr.Close()

	wake, err := terminal.NewWaker()
	if err != nil {
		return nil, "", err
	}
	defer wake.Close()

	flag := &ResizeFlag{}
	stop := startResizeNotifier(flag, wake)
	defer stop()

	keys := terminal.NewReader(os.Stdin)
	mux := terminal.NewMultiplexer(int(os.Stdin.Fd()), keys, wake)

	a := CreateApp(cfg, scr, mux, keys, newProvider(cfg), flag, logger)
	stats, err := a.MainLoop()

	// Restore before the caller prints anything.
	if cerr := scr.Close(); cerr != nil {
		logger.Printf("restore terminal: %v", cerr)
	}
	return &stats, a.ExitReason(), err
}

func recordRun(cfg Config, logger *log.Logger, r RunRecord) {
	h, err := OpenHistory(cfg.HistoryDB, DetermineSQLiteDriver(cfg.CgoSQLite))
	if err != nil {
		logger.Printf("history: %v", err)
		return
	}
	defer h.Close()
	if _, err := h.Record(r); err != nil {
		logger.Printf("history: %v", err)
	}
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded dashboard runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCommandConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			if cfg.HistoryDB == "" {
				return errors.New("no history database configured")
			}
			h, err := OpenHistory(cfg.HistoryDB, DetermineSQLiteDriver(cfg.CgoSQLite))
			if err != nil {
				return err
			}
			defer h.Close()
			runs, err := h.Recent(limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), historyTable(runs))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	return cmd
}

func historyTable(runs []RunRecord) string {
	if len(runs) == 0 {
		return "no runs recorded"
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "STARTED", "DURATION", "PROVIDER", "EXIT", "RESIZES", "INPUTS", "TIMEOUTS", "INTERRUPTS")
	for _, r := range runs {
		t.Row(
			strings.SplitN(r.ID, "-", 2)[0],
			r.Started.Local().Format("2006-01-02 15:04:05"),
			r.Ended.Sub(r.Started).Round(time.Second).String(),
			r.Provider,
			r.Reason,
			strconv.FormatUint(r.Stats.Resizes, 10),
			strconv.FormatUint(r.Stats.Inputs, 10),
			strconv.FormatUint(r.Stats.Timeouts, 10),
			strconv.FormatUint(r.Stats.Interrupts, 10),
		)
	}
	return t.String()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}
