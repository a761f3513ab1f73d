// Command tsanalyze runs the time series analysis engine over a CSV, TSV or
// XLSX file and prints the result.
//
//	tsanalyze series -file sales.csv -column y -max-lags 24
//	tsanalyze table -file sales.csv -format yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sartorproj/tsanalysis/analysis"
	"github.com/sartorproj/tsanalysis/internal/config"
	"github.com/sartorproj/tsanalysis/internal/logging"
	"github.com/sartorproj/tsanalysis/timeseries"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	file       string
	column     string
	idColumn   string
	idValue    string
	maxLags    int
	configPath string
	format     string
	components string
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	cmd := args[0]
	switch cmd {
	case "series", "table":
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		usage(stderr)
		return exitUsage
	}

	var opts options
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.file, "file", "", "input file (.csv, .tsv, .txt, .xlsx)")
	fs.StringVar(&opts.idColumn, "id-column", "", "keep only rows whose id column equals -id-value (CSV/TSV)")
	fs.StringVar(&opts.idValue, "id-value", "", "row filter value for -id-column")
	fs.StringVar(&opts.configPath, "config", "", "config file (default: tsanalyze.yaml in . or ./configs)")
	fs.StringVar(&opts.format, "format", "", "output format: json, yaml or text (overrides config)")
	if cmd == "series" {
		fs.StringVar(&opts.column, "column", "", "column to analyze")
		fs.IntVar(&opts.maxLags, "max-lags", 0, "maximum ACF/PACF lag (default from config)")
		fs.StringVar(&opts.components, "components", "", "comma-separated components whose minimum length is enforced")
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.file == "" {
		fmt.Fprintln(stderr, "-file is required")
		return exitUsage
	}
	if cmd == "series" && opts.column == "" {
		fmt.Fprintln(stderr, "-column is required")
		return exitUsage
	}
	components, err := parseComponents(opts.components)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitError
	}
	if opts.format != "" {
		cfg.Output.Format = strings.ToLower(opts.format)
	}
	if !validFormat(cfg.Output.Format) {
		fmt.Fprintf(stderr, "unsupported output format %q\n", cfg.Output.Format)
		return exitUsage
	}

	logCfg := logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
	}
	if cfg.Log.Output == "" || cfg.Log.Output == "stderr" {
		logCfg.Writer = stderr
	}
	log, closer, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "failed to create logger: %v\n", err)
		return exitError
	}
	defer closer.Close()

	var registry *prometheus.Registry
	engineOpts := analysis.Options{
		Workers:    cfg.Engine.Workers,
		MaxLags:    cfg.Engine.MaxLags,
		MIMaxLags:  cfg.Engine.MIMaxLags,
		MaxPeriods: cfg.Engine.MaxPeriods,
		Logger:     log,
	}
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		engineOpts.Metrics = analysis.NewMetrics(registry)
	}
	engine := analysis.New(engineOpts)

	table, err := loadTable(opts)
	if err != nil {
		log.Error().Err(err).Str("file", opts.file).Msg("failed to load data")
		return exitError
	}
	log.Debug().
		Str("file", opts.file).
		Int("rows", table.Rows()).
		Int("columns", len(table.Columns)).
		Msg("data loaded")

	var result any
	switch cmd {
	case "series":
		maxLags := opts.maxLags
		if maxLags <= 0 {
			maxLags = cfg.Engine.MaxLags
		}
		res, err := engine.AnalyzeColumn(table, opts.column, maxLags, components...)
		if err != nil {
			log.Error().Err(err).Str("column", opts.column).Msg("analysis failed")
			return exitError
		}
		logDone(log, res.AnalysisID, res.ComputationTimeSeconds, len(res.ComponentFailures))
		result = res
	case "table":
		res, err := engine.AnalyzeTable(table)
		if err != nil {
			log.Error().Err(err).Msg("analysis failed")
			return exitError
		}
		logDone(log, res.AnalysisID, res.ComputationTimeSeconds, len(res.ComponentFailures))
		result = res
	}

	if err := encode(stdout, result, cfg.Output.Format, cfg.Output.Pretty); err != nil {
		log.Error().Err(err).Msg("failed to write result")
		return exitError
	}

	if registry != nil {
		if err := writeMetrics(stderr, registry); err != nil {
			log.Error().Err(err).Msg("failed to write metrics")
			return exitError
		}
	}
	return exitOK
}

func loadTable(opts options) (*timeseries.Table, error) {
	if opts.idColumn == "" {
		return timeseries.LoadFile(opts.file)
	}

	csvOpts := timeseries.DefaultCSVOptions()
	csvOpts.IDColumn = opts.idColumn
	csvOpts.IDFilter = opts.idValue
	switch {
	case strings.HasSuffix(strings.ToLower(opts.file), ".tsv"):
		csvOpts.Delimiter = '\t'
	case strings.HasSuffix(strings.ToLower(opts.file), ".xlsx"):
		return nil, errors.New("-id-column is only supported for CSV and TSV files")
	}
	return timeseries.LoadCSV(opts.file, csvOpts)
}

func parseComponents(s string) ([]analysis.Component, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	known := make(map[string]analysis.Component, len(analysis.SeriesComponents))
	for _, c := range analysis.SeriesComponents {
		known[string(c)] = c
	}

	var components []analysis.Component
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unknown component %q", name)
		}
		components = append(components, c)
	}
	return components, nil
}

func logDone(log zerolog.Logger, id string, seconds float64, failures int) {
	event := log.Info()
	if failures > 0 {
		event = log.Warn()
	}
	event.
		Str("analysis_id", id).
		Float64("seconds", seconds).
		Int("component_failures", failures).
		Msg("analysis complete")
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: tsanalyze <command> [flags]

Commands:
  series   analyze one column: autocorrelation, mutual information, Hurst,
           stationarity, seasonality and the dataset quality report
  table    grade the whole dataset: column statistics and quality report

Run 'tsanalyze <command> -h' for the flags of a command.
`)
}
