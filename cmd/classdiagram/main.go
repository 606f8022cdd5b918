package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-classdiagram/pkg/audit"
	"github.com/dd0wney/cluso-classdiagram/pkg/config"
	"github.com/dd0wney/cluso-classdiagram/pkg/graphql"
	"github.com/dd0wney/cluso-classdiagram/pkg/logging"
	"github.com/dd0wney/cluso-classdiagram/pkg/metrics"
	"github.com/dd0wney/cluso-classdiagram/pkg/workbench"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (default: built-in example diagram)")
	logPath := flag.String("log", "classdiagram.log", "Log file; the terminal is used by the UI")
	dump := flag.Bool("dump", false, "Print the diagram model as JSON and exit")
	query := flag.String("query", "", "Run a GraphQL query against the diagram and exit")
	history := flag.String("history", "", "On exit, write the edit history to stdout as json, jsonl or csv")
	flag.Parse()

	opts := options{
		configPath: *configPath,
		logPath:    *logPath,
		dump:       *dump,
		query:      *query,
		history:    *history,
	}
	if err := run(context.Background(), opts); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	configPath string
	logPath    string
	dump       bool
	query      string
	history    string
}

// run returns instead of exiting so the log file and subscriptions are
// closed on every path.
func run(ctx context.Context, opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	var historyFormat audit.ExportFormat
	if opts.history != "" {
		f, err := audit.ParseExportFormat(opts.history)
		if err != nil {
			return fmt.Errorf("invalid -history: %w", err)
		}
		historyFormat = f
	}

	oneShot := opts.dump || opts.query != ""
	logger, closer, err := openLogger(opts.logPath, logging.ParseLevel(cfg.LogLevel), oneShot)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()
	logging.SetDefaultLogger(logger)

	wb, err := workbench.New(cfg, workbench.WithLogger(logger), workbench.WithMetrics(metrics.DefaultRegistry()))
	if err != nil {
		logger.Error("startup failed", logging.Error(err))
		return fmt.Errorf("start: %w", err)
	}
	defer wb.Close()

	switch {
	case opts.dump:
		return dumpModel(os.Stdout, wb)
	case opts.query != "":
		return runQuery(ctx, os.Stdout, wb, opts.query)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := initialModel(ctx, wb)
	if err != nil {
		return fmt.Errorf("build UI: %w", err)
	}
	sub, err := wb.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	m.changes = sub.Channel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}

	if historyFormat != "" {
		if err := wb.History().Export(os.Stdout, historyFormat, nil); err != nil {
			return fmt.Errorf("export history: %w", err)
		}
	}
	return nil
}

// openLogger writes to path, or to stderr for the one-shot modes.
func openLogger(path string, level logging.Level, oneShot bool) (logging.Logger, io.Closer, error) {
	if oneShot || path == "" {
		return logging.NewJSONLogger(os.Stderr, level), io.NopCloser(nil), nil
	}
	logger, closer, err := logging.NewFileLogger(path, level)
	if err != nil {
		return nil, nil, err
	}
	return logger, closer, nil
}

func dumpModel(w io.Writer, wb *workbench.Workbench) error {
	model, err := wb.Canvas().ToJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(model))
	return err
}

func runQuery(ctx context.Context, w io.Writer, wb *workbench.Workbench, query string) error {
	schema, err := graphql.GenerateSchema(wb)
	if err != nil {
		return err
	}
	result := graphql.ExecuteWithDepthLimit(ctx, schema, query, graphql.DefaultMaxDepth, nil)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return err
	}
	if result.HasErrors() {
		return fmt.Errorf("%d query errors", len(result.Errors))
	}
	return nil
}
