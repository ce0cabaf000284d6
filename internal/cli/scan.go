package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javalex/internal/configloader"
	"github.com/yaklabco/javalex/internal/logging"
	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/langdetect"
	"github.com/yaklabco/javalex/pkg/reporter"
	"github.com/yaklabco/javalex/pkg/runner"
)

// reportFilePermissions is the file mode for files written with --output.
const reportFilePermissions = 0o644

// stdinPath names standard input in arguments and reports.
const (
	stdinArg  = "-"
	stdinPath = "<stdin>"
)

// utf8BOM is skipped at the start of standard input.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF} //nolint:gochecknoglobals // Constant byte sequence.

// scanFlags holds the flags shared by the commands that scan files.
type scanFlags struct {
	format          string
	level           string
	jobs            int
	ignore          []string
	extensions      []string
	mergeWhitespace bool
	detectLanguage  bool
	includeVendored bool
	maxFileSize     int64
	noContext       bool
	compact         bool
	noSummary       bool
	output          string
}

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Output format: text, table, json, summary")
	cmd.Flags().StringVarP(&flags.level, "level", "l", "", "Java language level, e.g. 1.8, 17, 25 (default: highest)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "Number of parallel workers (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "Glob patterns to exclude (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "File extensions to scan (default: .java)")
	cmd.Flags().BoolVar(&flags.mergeWhitespace, "merge-whitespace", false,
		"Merge adjacent whitespace and bad-character tokens")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"Sniff files without a Java extension for Java content")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "Scan vendored and generated sources")
	cmd.Flags().Int64Var(&flags.maxFileSize, "max-file-size", 0, "Skip files larger than this many bytes (0 = no limit)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "Hide the source line under each diagnostic")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "Compact output (minified JSON, one-line summary)")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "Omit the summary after results")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the report to a file instead of stdout")
}

// cliConfig builds the command-line layer of the configuration. Only flags
// the user actually set take part, so files and environment keep their say
// over everything else.
func (f *scanFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := config.ParseOutputFormat(f.format)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}
	if changed("level") {
		cfg.LanguageLevel = f.level
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("ext") {
		cfg.Extensions = f.extensions
	}
	if changed("merge-whitespace") {
		cfg.MergeWhitespace = config.Bool(f.mergeWhitespace)
	}
	if changed("detect-language") {
		cfg.DetectLanguage = config.Bool(f.detectLanguage)
	}
	if changed("include-vendored") {
		cfg.IncludeVendored = config.Bool(f.includeVendored)
	}
	if changed("max-file-size") {
		cfg.MaxFileSize = f.maxFileSize
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if err := applyColorFlag(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyColorFlag copies the persistent --color flag into cfg.
func applyColorFlag(cmd *cobra.Command, cfg *config.Config) error {
	if !cmd.Flags().Changed("color") {
		return nil
	}
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("read color flag: %w", err)
	}
	cfg.Color = config.ColorMode(color)
	return nil
}

// loadConfig resolves the layered configuration for a command run from
// workDir, logging any validation warnings.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("read config flag: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: explicit,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn("config warning", logging.FieldConfig, warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("configuration loaded", logging.FieldPaths, result.LoadedFrom)
	}

	return result.Config, nil
}

// commandContext returns the command context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// scanOptions controls what a scan keeps for reporting.
type scanOptions struct {
	keepTokens bool
	expandDocs bool
}

// scan tokenizes the files named by args, or standard input for "-".
func scan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, workDir string, args []string, so scanOptions) (*runner.Result, error) {
	opts, err := runner.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts.Paths = args
	opts.WorkingDir = workDir
	opts.Scan.KeepTokens = so.keepTokens
	if so.expandDocs {
		opts.Scan.ExpandDocs = true
	}

	if len(args) == 1 && args[0] == stdinArg {
		return scanStdin(ctx, cmd.InOrStdin(), cfg, opts.Scan)
	}

	logging.FromContext(ctx).Debug("starting scan",
		logging.FieldPaths, opts.Paths,
		logging.FieldJobs, opts.Jobs,
		logging.FieldLevel, opts.Scan.Level.String(),
	)

	result, err := runner.New(opts).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return result, nil
}

func scanStdin(ctx context.Context, in io.Reader, cfg *config.Config, opts runner.ScanOptions) (*runner.Result, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}

	if cfg.DetectLanguageEnabled() && !langdetect.IsJava("", content) {
		logging.FromContext(ctx).Warn("standard input does not look like Java source")
	}

	start := 0
	if bytes.HasPrefix(content, utf8BOM) {
		start = len(utf8BOM)
	}

	outcome := runner.NewScanner(opts).Scan(stdinPath, content, start)
	return runner.NewResult(outcome), nil
}

// reportOptions carries the per-command report settings.
type reportOptions struct {
	tokens      bool
	showContext bool
	showSummary bool
	compact     bool
}

// report renders result to stdout, or atomically to cfg.Output when set.
func report(ctx context.Context, cmd *cobra.Command, cfg *config.Config, workDir string, result *runner.Result, ro reportOptions) error {
	var buf bytes.Buffer
	writer := cmd.OutOrStdout()
	color := cfg.Color
	if cfg.Output != "" {
		writer = &buf
		color = config.ColorNever
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      writer,
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      cfg.Format,
		Color:       color,
		ShowContext: ro.showContext,
		ShowSummary: ro.showSummary,
		GroupByFile: true,
		Compact:     ro.compact,
		Tokens:      ro.tokens,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return flushOutput(ctx, cfg.Output, buf.Bytes())
}

// workingDir returns the directory paths are resolved against.
func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}
