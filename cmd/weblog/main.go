// Package main is the entry point for the weblog analyzer.
// It prints access histograms of a web log, or browses them in a Bubble Tea TUI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/analyzer"
	"github.com/j-veylop/weblog-analyzer/internal/app"
	"github.com/j-veylop/weblog-analyzer/internal/config"
	"github.com/j-veylop/weblog-analyzer/internal/logfile"
	"github.com/j-veylop/weblog-analyzer/internal/logger"
	"github.com/j-veylop/weblog-analyzer/internal/models"
	"github.com/j-veylop/weblog-analyzer/internal/services"
	"github.com/j-veylop/weblog-analyzer/internal/ui/tabs/calendar"
	"github.com/j-veylop/weblog-analyzer/internal/ui/tabs/hours"
	"github.com/j-veylop/weblog-analyzer/internal/ui/tabs/info"
	"github.com/j-veylop/weblog-analyzer/internal/ui/tabs/raw"
	"github.com/j-veylop/weblog-analyzer/internal/version"
)

// mode selects what the program does after parsing its arguments.
type mode int

const (
	modeTUI mode = iota
	modeHelp
	modeVersion
	modePrint
	modeRaw
	modeDemo
)

// options holds the parsed command line.
type options struct {
	mode   mode
	source string
	demo   int
}

var errUsage = errors.New("invalid arguments")

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	switch opts.mode {
	case modeHelp:
		printUsage(os.Stdout)
		return
	case modeVersion:
		fmt.Println(version.Info())
		return
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs reads flags and the optional log source argument.
func parseArgs(args []string) (options, error) {
	opts := options{mode: modeTUI}

	setMode := func(m mode) error {
		if opts.mode != modeTUI && opts.mode != m {
			return fmt.Errorf("%w: conflicting modes", errUsage)
		}
		opts.mode = m
		return nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		var err error

		switch {
		case arg == "-h" || arg == "--help":
			return options{mode: modeHelp}, nil
		case arg == "-v" || arg == "--version":
			return options{mode: modeVersion}, nil
		case arg == "--print":
			err = setMode(modePrint)
		case arg == "--raw":
			err = setMode(modeRaw)
		case arg == "--demo" || strings.HasPrefix(arg, "--demo="):
			if err = setMode(modeDemo); err != nil {
				break
			}
			value, found := strings.CutPrefix(arg, "--demo=")
			if !found {
				if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
					continue
				}
				i++
				value = args[i]
			}
			n, convErr := strconv.Atoi(value)
			if convErr != nil || n <= 0 {
				return options{}, fmt.Errorf("%w: --demo wants a positive count, got %q", errUsage, value)
			}
			opts.demo = n
		case strings.HasPrefix(arg, "-"):
			return options{}, fmt.Errorf("%w: unknown flag %s", errUsage, arg)
		default:
			if opts.source != "" {
				return options{}, fmt.Errorf("%w: more than one log source", errUsage)
			}
			opts.source = arg
		}

		if err != nil {
			return options{}, err
		}
	}

	return opts, nil
}

// run contains the main application logic, separated for cleaner error handling.
func run(opts options, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.source != "" {
		cfg.LogSource = opts.source
	}

	switch opts.mode {
	case modeDemo:
		logger.Setup(cfg.LogLevel, os.Stderr)
		return writeDemo(cfg, opts.demo, stdout)
	case modePrint, modeRaw:
		logger.Setup(cfg.LogLevel, os.Stderr)
		cfg.Watch = false
		cfg.Notify = false
		return report(cfg, opts.mode, stdout)
	default:
		return runTUI(cfg)
	}
}

// writeDemo writes a generated log to the configured source path.
func writeDemo(cfg *config.Config, n int, stdout io.Writer) error {
	if n <= 0 {
		n = cfg.DemoEntries
	}
	if _, isDB := services.DatabasePath(cfg.LogSource); isDB {
		return fmt.Errorf("demo logs are text files, not databases: %s", cfg.LogSource)
	}

	if err := logfile.CreateDemo(cfg.LogSource, n, uint64(time.Now().UnixNano())); err != nil {
		return err
	}
	_, err := fmt.Fprintf(stdout, "Wrote %d demo entries to %s\n", n, cfg.LogSource)
	return err
}

// report analyzes the log once and prints it.
func report(cfg *config.Config, m mode, stdout io.Writer) (err error) {
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		err = errors.Join(err, svcManager.Close())
	}()

	if m == modeRaw {
		return svcManager.Analyzer().PrintData(stdout)
	}
	return printReport(stdout, svcManager.Analyzer())
}

// printReport writes every count table with its extremes, then the totals.
func printReport(w io.Writer, a *analyzer.Analyzer) error {
	for _, dim := range models.Dimensions {
		if err := a.PrintCounts(w, dim); err != nil {
			return err
		}

		s := a.Summary(dim)
		name := strings.ToLower(dim.String())
		if !s.HasData() {
			if _, err := fmt.Fprintf(w, "Busiest %s: none\nQuietest %s: none\n\n", name, name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "Busiest %s: %d (%d accesses)\nQuietest %s: %d (%d accesses)\n\n",
			name, s.Label(s.Busiest), s.BusiestCount,
			name, s.Label(s.Quietest), s.QuietestCount); err != nil {
			return err
		}
	}

	if start := a.BusiestTwoHours(); start != analyzer.NoBucket {
		if _, err := fmt.Fprintf(w, "Busiest two hours: %s (%d accesses)\n",
			hours.HourRange(start, 2), a.WindowSum(models.DimensionHour, start, 2)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total accesses: %d\n", a.NumberOfAccesses())
	return err
}

// runTUI starts the Bubble Tea program with logs kept off the screen.
func runTUI(cfg *config.Config) error {
	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger.Setup(cfg.LogLevel, logOut)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	state := model.State()
	model.SetTabs([]app.Tab{
		hours.New(state),
		calendar.New(state),
		raw.New(state),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `weblog-analyzer - access histograms for web server logs

Usage:
  weblog [flags] [log-source]

A log source is a text log file, or a SQLite database written with
IMPORT_TO_DB (a path ending in .db/.sqlite/.sqlite3 or prefixed sqlite:).

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information
  --print         Print the count tables and extremes, then exit
  --raw           Print every parsed entry, then exit
  --demo [N]      Write N random entries to the log source, then exit

Keyboard Shortcuts:
  1-4             Switch between tabs (Hours, Calendar, Raw, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Scroll
  r               Re-read the log and refresh
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  LOG_SOURCE      Log file or database to analyze (default: demo.log)
  DATABASE_PATH   SQLite database for IMPORT_TO_DB
  IMPORT_TO_DB    Copy the log into the database and analyze from there
  WATCH           Refresh when the log file changes (default: true)
  WATCH_DEBOUNCE  Delay before a change triggers a refresh (default: 100ms)
  NOTIFY          Desktop notification when the busiest hour changes
  DEMO_ENTRIES    Entries written by --demo without a count (default: 1000)
  LOG_LEVEL       debug, info, warn or error (default: info)
  LOG_FILE        Where TUI diagnostics go (default: discarded)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/weblog-analyzer/.env
  - ~/.weblog-analyzer/.env
`)
}
