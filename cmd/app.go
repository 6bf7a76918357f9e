package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	db "github.com/KazanKK/tablextract/database"
	"github.com/KazanKK/tablextract/extract"
	"github.com/KazanKK/tablextract/internal/logging"
	utils "github.com/KazanKK/tablextract/internal/utils"
)

const usageText = `USAGE:
======
 * HELP: tablextract [no input | -h | --help]
 * LIST TABLES: tablextract [-l | --list_tables] --input [PATH_TO_DB]
 * WRITE SINGLE TABLE: tablextract --input [PATH_TO_DB] --output [PATH_TO_OUTPUT_DIRECTORY] --export_table [TABLE_NAME]
 * WRITE ALL TABLES: tablextract --input [PATH_TO_DB] --output [PATH_TO_OUTPUT_DIRECTORY] --export_all_tables
 * WRITE CONFIG: tablextract init [--output-dir DIR] [--delimiter CHAR] [--crlf]


Additional Flags:
+ VERBOSE: [-v | --verbose] - shows export error detail (if any).
+ SUMMARY: [--summary] - prints a table of results after exporting all tables.
+ CONFIG: [--config PATH] - reads settings from PATH instead of tablextract.yaml.
`

// Options controls where a run writes and how it renders.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// Interactive renders the batch summary table, as when stdout is a terminal.
	Interactive bool
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

type runner struct {
	opts    Options
	verbose bool
	help    bool     // -h or --help seen anywhere on the command line
	stray   []string // positional tokens that are not a subcommand
}

// Run executes the command line args (args[0] is the program name) and
// returns the process exit code. It never exits the process itself.
func Run(ctx context.Context, args []string, opts Options) int {
	opts = opts.withDefaults()
	if len(args) <= 1 {
		printUsage(opts.Stdout)
		return 0
	}

	r := &runner{opts: opts}
	args = r.scanArgs(args)
	err := r.app().RunContext(ctx, args)
	return r.exitCode(err)
}

// valueFlags take the next token as their value when not written name=value.
var valueFlags = map[string]bool{
	"input":        true,
	"output":       true,
	"export_table": true,
	"config":       true,
}

// scanArgs takes help flags and positional tokens out of args so flags are
// honoured in any order. urfave/cli stops parsing at the first positional and
// answers -h/--help with its own template, so neither may reach it. A
// leading subcommand is passed through untouched.
func (r *runner) scanArgs(args []string) []string {
	if len(args) > 1 && args[1] == "init" {
		return args
	}

	kept := []string{args[0]}
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			r.stray = append(r.stray, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			r.stray = append(r.stray, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if name == "help" || name == "h" {
			r.help = true
			continue
		}
		kept = append(kept, arg)
		if valueFlags[name] && i+1 < len(args) {
			i++
			kept = append(kept, args[i])
		}
	}
	return kept
}

func (r *runner) app() *cli.App {
	return &cli.App{
		Name:            "tablextract",
		Usage:           "Extract tables from a desktop database file into CSV files",
		HideHelp:        true,
		HideHelpCommand: true,
		Writer:          r.opts.Stdout,
		ErrWriter:       r.opts.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "input",
				Usage: "Path to the database file (SQLite or dBase)",
			},
			&cli.StringFlag{
				Name:    "output",
				Usage:   "Existing directory receiving <table>.csv files",
				EnvVars: []string{"TABLEXTRACT_OUTPUT"},
			},
			&cli.BoolFlag{
				Name:    "list_tables",
				Aliases: []string{"l"},
				Usage:   "Print table names, one per line",
			},
			&cli.StringFlag{
				Name:  "export_table",
				Usage: "Export the named table (case-insensitive)",
			},
			&cli.BoolFlag{
				Name:  "export_all_tables",
				Usage: "Export every table",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show full error detail for failed exports",
				EnvVars: []string{"TABLEXTRACT_VERBOSE"},
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "Print a table of results after exporting all tables",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a tablextract.yaml config file",
				EnvVars: []string{"TABLEXTRACT_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			InitCommand(),
		},
		Action: r.action,
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return errors.Mark(errors.Wrap(err, "invalid arguments"), db.ErrMissingFlag)
		},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}
}

func (r *runner) action(c *cli.Context) error {
	ctx := c.Context

	config, configPath, err := utils.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	r.verbose = c.Bool("verbose") || config.Verbose
	if r.verbose {
		logging.Setup(r.opts.Stderr, "debug")
	} else {
		logging.Setup(r.opts.Stderr, "warn")
	}
	if configPath != "" {
		slog.Debug("loaded config", "path", configPath)
	}
	if len(r.stray) > 0 {
		slog.Warn("ignoring extra arguments", "args", strings.Join(r.stray, " "))
	}

	csvOpts, err := csvOptions(config)
	if err != nil {
		return err
	}

	// Input and output are validated before dispatch, whatever the intent.
	var container db.Container
	if c.IsSet("input") {
		container, err = db.Open(ctx, c.String("input"))
		if err != nil {
			return err
		}
		defer container.Close()
		slog.Debug("using database", "path", container.Path(), "format", container.Format())
	}

	outputDir := config.OutputDir
	if outputDir != "" && configPath != "" && !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(filepath.Dir(configPath), outputDir)
	}
	if c.IsSet("output") {
		outputDir = c.String("output")
		if outputDir == "" {
			return errors.Mark(errors.New("Invalid output directory or output directory not supplied."), db.ErrMissingFlag)
		}
	}
	if outputDir != "" {
		if err := validateOutputDir(outputDir); err != nil {
			return err
		}
	}

	intent := ParseIntent(parsedFlags{Context: c, help: r.help})
	slog.Debug("dispatching", "intent", intent.Kind.String())

	switch intent.Kind {
	case IntentList:
		if container == nil {
			return missingFlag("--input", "list tables")
		}
		return r.listTables(ctx, container)

	case IntentExportOne:
		if container == nil {
			return missingFlag("--input", "export a table")
		}
		if outputDir == "" {
			return missingFlag("--output", "export a table")
		}
		return r.exportTable(ctx, r.exporter(container, outputDir, csvOpts), intent.Table)

	case IntentExportAll:
		if container == nil {
			return missingFlag("--input", "export tables")
		}
		if outputDir == "" {
			return missingFlag("--output", "export tables")
		}
		return r.exportAll(ctx, r.exporter(container, outputDir, csvOpts), c.Bool("summary"))

	default:
		printUsage(r.opts.Stdout)
		return nil
	}
}

// parsedFlags answers "help" from the pre-scan and everything else from
// urfave's parsed flags.
type parsedFlags struct {
	*cli.Context
	help bool
}

func (f parsedFlags) Bool(name string) bool {
	if name == "help" {
		return f.help
	}
	return f.Context.Bool(name)
}

func (r *runner) exporter(c db.Container, outputDir string, opts db.CSVOptions) *extract.Exporter {
	return &extract.Exporter{
		Container: c,
		OutputDir: outputDir,
		Verbose:   r.verbose,
		CSV:       opts,
		Out:       r.opts.Stdout,
	}
}

func (r *runner) exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(r.opts.Stderr, "ERROR::: %v\n", err)
	if r.verbose {
		fmt.Fprintf(r.opts.Stderr, "%+v\n", err)
	}
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) && exitErr.ExitCode() != 0 {
		return exitErr.ExitCode()
	}
	return 1
}

func csvOptions(config utils.Config) (db.CSVOptions, error) {
	opts := db.DefaultCSVOptions()
	delim, err := config.DelimiterRune()
	if err != nil {
		return opts, err
	}
	opts.Delimiter = delim
	opts.UseCRLF = config.CRLF
	return opts, nil
}

func validateOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, "Output must be a valid DIRECTORY: %s", dir)
	}
	if !info.IsDir() {
		return errors.Newf("Output must be a valid DIRECTORY: %s", dir)
	}
	return nil
}

func missingFlag(flag, action string) error {
	return errors.Mark(errors.Newf("%s is required to %s", flag, action), db.ErrMissingFlag)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
	fmt.Fprintf(w, "\nSupported databases: %s\n", strings.Join(db.SupportedFormats(), ", "))
}
