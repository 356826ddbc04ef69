// Package main provides the entry point for the Chtholly semantic
// analyzer driver: the `analyze <file>` command of spec.md §6's CLI
// surface, plus the ambient version/watch flags carried over from the
// teacher's cmd/orizon-compiler/main.go.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/chtholly-lang/chtholly/internal/astjson"
	"github.com/chtholly-lang/chtholly/internal/cli"
	"github.com/chtholly-lang/chtholly/internal/diagnostics"
	"github.com/chtholly-lang/chtholly/internal/sema"
)

const usageLine = "chtholly-analyze [--json] [--watch] [--verbose] [--debug] [--config FILE] <file.json>"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		showHelp    = flag.Bool("help", false, "show help information")
		jsonOutput  = flag.Bool("json", false, "output version or diagnostics in JSON format")
		watch       = flag.Bool("watch", false, "re-run the analyzer whenever the input file changes")
		verbose     = flag.Bool("verbose", false, "log each analysis phase to stderr")
		debug       = flag.Bool("debug", false, "log verbose plus internal diagnostics detail")
		configPath  = flag.String("config", "", "load (and persist) CLI settings from this JSON file")
	)
	flag.Parse()

	if *showVersion {
		printVersion(*jsonOutput)
		return
	}
	if *showHelp {
		showUsage()
		return
	}

	cfg, err := cli.LoadConfig(*configPath)
	logger := cli.NewLogger(*verbose || *debug, *debug)
	if err != nil {
		cli.HandleError(fmt.Errorf("loading %s: %w", *configPath, err), logger)
	}
	if cfg.Verbose {
		logger.Verbose = true
	}
	if cfg.Debug {
		logger.Verbose = true
		logger.DebugMode = true
	}

	args := flag.Args()
	if err := cli.ValidateArgs(args, 1, usageLine); err != nil {
		showUsage()
		cli.HandleError(err, logger)
	}
	inputFile := args[0]

	if *configPath != "" {
		cfg.Verbose, cfg.Debug = logger.Verbose, logger.DebugMode
		cfg.WorkDir = filepath.Dir(inputFile)
		if err := cfg.SaveConfig(*configPath); err != nil {
			logger.Warn("failed to persist config to %s: %v", *configPath, err)
		}
	}

	if *watch {
		runWatch(inputFile, *jsonOutput, logger)
		return
	}

	cli.ExitWithCode(runOnce(inputFile, *jsonOutput, logger), "")
}

// printVersion reports the CLI's own version, parsed as a semver.Version
// via cli.ParsedVersion so a malformed build-time Version constant is
// itself caught rather than silently printed.
func printVersion(jsonOutput bool) {
	if _, err := cli.ParsedVersion(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid built-in version string: %v\n", err)
		os.Exit(1)
	}
	cli.PrintVersion("Chtholly Analyzer", jsonOutput)
}

func showUsage() {
	cli.PrintUsage("chtholly-analyze", []cli.CommandInfo{
		{Name: "analyze", Description: "Check a JSON-encoded AST file and report diagnostics"},
	})
	cli.PrintCommandUsage("chtholly-analyze", cli.CommandInfo{
		Name:        "analyze",
		Description: "Check a JSON-encoded AST file and report diagnostics",
		Usage:       usageLine,
		Flags: []cli.FlagInfo{
			{Name: "json", Usage: "emit diagnostics as a JSON array instead of plain text"},
			{Name: "watch", Usage: "re-analyze whenever the input file changes"},
			{Name: "verbose", Usage: "log each analysis phase to stderr"},
			{Name: "debug", Usage: "log verbose plus internal diagnostics detail"},
			{Name: "config", Usage: "load (and persist) CLI settings from a JSON file"},
		},
		Examples: []string{"chtholly-analyze program.ast.json", "chtholly-analyze --watch program.ast.json"},
	})
}

// runOnce reads, decodes, and checks inputFile once, printing its
// diagnostics and returning the process exit code spec.md §6 specifies:
// 0 on no errors, 1 on any error (including a decode failure).
func runOnce(inputFile string, jsonOutput bool, logger *cli.Logger) int {
	logger.Info("reading %s", inputFile)
	data, err := os.ReadFile(inputFile)
	if err != nil {
		logger.Error("failed to read %s: %v", inputFile, err)
		return 1
	}

	logger.Debug("decoding AST from %d bytes", len(data))
	prog, err := astjson.Decode(data, inputFile)
	if err != nil {
		logger.Error("failed to decode AST from %s: %v", inputFile, err)
		return 1
	}

	logger.Debug("checking %d top-level declaration(s)", len(prog.Declarations))
	analyzer := sema.NewAnalyzer()
	diags := analyzer.Analyze(prog)
	diags.SortBySpan()
	logger.Info("%s: %d diagnostic(s)", inputFile, len(diags.All()))

	if jsonOutput {
		printDiagnosticsJSON(diags.All())
	} else {
		for _, d := range diags.All() {
			fmt.Fprintln(os.Stderr, d.String())
		}
	}

	return diags.ExitCode()
}

// runWatch re-runs runOnce every time inputFile changes on disk, using
// fsnotify the way a CLI that stays resident watches a config or source
// file for edits. Re-analysis runs are serialized by runWatch's single
// event loop; it does not debounce or coalesce rapid bursts of events,
// an accepted simplification for a single-file watch.
func runWatch(inputFile string, jsonOutput bool, logger *cli.Logger) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cli.ExitWithError("failed to start file watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.Add(inputFile); err != nil {
		cli.ExitWithError("failed to watch %s: %v", inputFile, err)
	}

	fmt.Printf("watching %s for changes (ctrl-c to stop)\n", inputFile)
	runOnce(inputFile, jsonOutput, logger)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fmt.Printf("\n--- %s changed, re-analyzing ---\n", inputFile)
				runOnce(inputFile, jsonOutput, logger)
			} else {
				logger.Debug("ignoring watch event %s on %s", event.Op, inputFile)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func printDiagnosticsJSON(all []diagnostics.Diagnostic) {
	type jsonDiag struct {
		Severity string `json:"severity"`
		Kind     string `json:"kind"`
		Message  string `json:"message"`
		Location string `json:"location"`
	}
	out := make([]jsonDiag, len(all))
	for i, d := range all {
		out[i] = jsonDiag{
			Severity: d.Severity.String(),
			Kind:     d.Kind.String(),
			Message:  d.Message,
			Location: d.Location.String(),
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to encode diagnostics: %v\n", err)
	}
}
