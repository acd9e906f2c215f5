package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	csvskema "github.com/reoring/csvskema"
	"github.com/reoring/csvskema/dsl"
	"github.com/reoring/csvskema/i18n"
	"github.com/reoring/csvskema/internal/config"
	"github.com/reoring/csvskema/internal/logging"
	"github.com/reoring/csvskema/internal/render"
	"github.com/reoring/csvskema/internal/server"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1 // the schema rejected the table
	exitUsage   = 2 // bad flags, bad config or unreadable source
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "parse":
		return parseCmd(ctx, args[1:], stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	case "serve":
		return serveCmd(ctx, args[1:], stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `csvskema CLI

Usage:
  csvskema parse  [-config run.yaml] [-schema string,coerce.number] [-all] [-format text|json] file.csv
  csvskema schema -schema string,coerce.number
  csvskema serve  [-config run.yaml] [-addr :8080]

Column types:
  string, number, coerce.number, int, coerce.int, boolean, coerce.boolean
  (append ? for optional, e.g. coerce.number?)

Exit codes:
  0 rows conform, 1 schema rejected the table, 2 usage, config or source error`)
}

// runFlags are the flags shared by parse and serve. Only flags given on the
// command line override the loaded configuration.
type runFlags struct {
	configPath string
	file       string
	schema     string
	all        bool
	failFast   bool
	format     string
	lang       string
	maxBytes   int64
	logLevel   string
	logFormat  string
	addr       string
}

func (f *runFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "YAML run configuration")
	fs.StringVar(&f.schema, "schema", "", "comma-separated column types (empty: raw rows)")
	fs.BoolVar(&f.all, "all", false, "report every failing row")
	fs.BoolVar(&f.failFast, "fail-fast", false, "stop at the first issue")
	fs.StringVar(&f.lang, "lang", "", "issue message language: en or ja")
	fs.Int64Var(&f.maxBytes, "max-bytes", 0, "reject sources larger than this many bytes")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "text or json")
}

// load reads the configuration and applies the flags that were set on fs.
func (f *runFlags) load(fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "file":
			cfg.File = f.file
		case "schema":
			cfg.Columns = splitList(f.schema)
		case "all":
			cfg.CollectAll = f.all
		case "fail-fast":
			cfg.FailFast = f.failFast
		case "format":
			cfg.Format = f.format
		case "lang":
			cfg.Lang = f.lang
		case "max-bytes":
			cfg.MaxBytes = f.maxBytes
		case "log-level":
			cfg.Log.Level = f.logLevel
		case "log-format":
			cfg.Log.Format = f.logFormat
		case "addr":
			cfg.Server.Addr = f.addr
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var f runFlags
	f.register(fs)
	fs.StringVar(&f.file, "file", "", "CSV file to parse (or pass it as the first argument)")
	fs.StringVar(&f.format, "format", "", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg, err := f.load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "csvskema: %v\n", err)
		return exitUsage
	}
	if fs.NArg() > 0 {
		cfg.File = fs.Arg(0)
	}
	if cfg.File == "" {
		fmt.Fprintln(stderr, "csvskema: no input file")
		fs.Usage()
		return exitUsage
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, stderr)
	i18n.SetLanguage(cfg.Lang)

	var schema csvskema.RowSchema
	if len(cfg.Columns) > 0 {
		ts, err := dsl.FromNames(cfg.Columns)
		if err != nil {
			fmt.Fprintf(stderr, "csvskema: %v\n", err)
			return exitUsage
		}
		schema = ts
	}

	logger.Debug("parsing", "source", cfg.File, "columns", strings.Join(cfg.Columns, ","))
	res, err := csvskema.ParseFile(ctx, cfg.File, schema, csvskema.ParseOpt{
		CollectAll: cfg.CollectAll,
		FailFast:   cfg.FailFast,
		MaxBytes:   cfg.MaxBytes,
	})
	if err != nil {
		logger.Error("source unavailable", "source", cfg.File, "error", err)
		return exitUsage
	}

	if strings.ToLower(cfg.Format) == "json" {
		doc := render.NewDocument(res)
		doc.Source = cfg.File
		err = render.JSON(stdout, doc)
	} else {
		err = render.Text(stdout, res)
	}
	if err != nil {
		logger.Error("write output", "error", err)
		return exitUsage
	}

	if !res.OK() {
		logger.Error("schema rejected table", "source", cfg.File, "issues", len(res.Failure()))
		return exitInvalid
	}
	logger.Debug("parsed", "source", cfg.File, "kind", res.Kind().String(), "rows", res.Len())
	return exitOK
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cols string
	fs.StringVar(&cols, "schema", "", "comma-separated column types")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if cols == "" {
		fs.Usage()
		return exitUsage
	}
	ts, err := dsl.FromNames(splitList(cols))
	if err != nil {
		fmt.Fprintf(stderr, "csvskema: %v\n", err)
		return exitUsage
	}
	js, err := ts.JSONSchema()
	if err != nil {
		fmt.Fprintf(stderr, "csvskema: %v\n", err)
		return exitUsage
	}
	if err := render.Schema(stdout, js); err != nil {
		fmt.Fprintf(stderr, "csvskema: %v\n", err)
		return exitUsage
	}
	return exitOK
}

func serveCmd(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var f runFlags
	f.register(fs)
	fs.StringVar(&f.addr, "addr", "", "listen address")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg, err := f.load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "csvskema: %v\n", err)
		return exitUsage
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, stderr)
	i18n.SetLanguage(cfg.Lang)

	srv := server.New(cfg, logger)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("server failed", "error", err)
			return exitUsage
		}
		return exitOK
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
		return exitUsage
	}
	logger.Info("server stopped")
	return exitOK
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
