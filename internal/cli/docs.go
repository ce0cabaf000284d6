package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javalex/internal/logging"
	"github.com/yaklabco/javalex/internal/ui/pretty"
	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/doccomment"
	"github.com/yaklabco/javalex/pkg/fsutil"
	"github.com/yaklabco/javalex/pkg/runner"
)

// Doc output formats.
const (
	docsFormatText = "text"
	docsFormatJSON = "json"
	docsFormatHTML = "html"
)

// docsFlags holds the flags for the docs command.
type docsFlags struct {
	format  string
	level   string
	compact bool
	output  string
}

// docFile is the JSON shape of one file's doc comments.
type docFile struct {
	Path     string               `json:"path"`
	Comments []doccomment.Comment `json:"comments"`
}

func newDocsCommand() *cobra.Command {
	flags := &docsFlags{}

	cmd := &cobra.Command{
		Use:   "docs <paths...>",
		Short: "Extract the doc comments of Java sources",
		Long: `Extract classic /** */ and markdown /// doc comments from Java
sources, together with the declarations they document, their block tags,
inline tags and element references.

Examples:
  javalex docs Main.java                  List doc comments as text
  javalex docs --format json src/         Emit structured JSON
  javalex docs --format html -o api.html src/main/java`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocs(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", docsFormatText, "Output format: text, json, html")
	cmd.Flags().StringVarP(&flags.level, "level", "l", "", "Java language level (default: highest)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "Minified JSON output")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write output to a file instead of stdout")

	return cmd
}

func runDocs(cmd *cobra.Command, args []string, flags *docsFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	switch flags.format {
	case docsFormatText, docsFormatJSON, docsFormatHTML:
	default:
		return fmt.Errorf("invalid format %q: must be text, json or html", flags.format)
	}

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("level") {
		cliCfg.LanguageLevel = flags.level
	}
	if err := applyColorFlag(cmd, cliCfg); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	opts, err := runner.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Paths = args
	opts.WorkingDir = workDir

	paths, err := runner.Discover(ctx, opts)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	extractor := doccomment.NewExtractor(opts.Scan.Level)
	files := make([]docFile, 0, len(paths))
	for _, path := range paths {
		src, err := fsutil.ReadSource(ctx, path, opts.MaxFileSize)
		if err != nil {
			return err
		}
		files = append(files, docFile{
			Path:     displayPath(workDir, path),
			Comments: extractor.Extract(src.Content),
		})
	}
	logger.Debug("extracted doc comments", logging.FieldFiles, len(files))

	var buf bytes.Buffer
	writer := cmd.OutOrStdout()
	if flags.output != "" {
		writer = &buf
	}

	switch flags.format {
	case docsFormatJSON:
		err = writeDocsJSON(writer, files, flags.compact)
	case docsFormatHTML:
		err = writeDocsHTML(writer, files)
	default:
		colorMode := cfg.Color
		if flags.output != "" {
			colorMode = config.ColorNever
		}
		err = writeDocsText(writer, files, pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer)))
	}
	if err != nil {
		return err
	}

	return flushOutput(ctx, flags.output, buf.Bytes())
}

// flushOutput writes buffered output to path, if one was given. An existing
// file with identical content is left untouched.
func flushOutput(ctx context.Context, path string, content []byte) error {
	if path == "" {
		return nil
	}
	changed, err := fsutil.WriteAtomicIfChanged(ctx, path, content, reportFilePermissions)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if changed {
		logging.FromContext(ctx).Info("output written", logging.FieldOutput, path)
	} else {
		logging.FromContext(ctx).Debug("output unchanged", logging.FieldOutput, path)
	}
	return nil
}

// displayPath makes path relative to workDir when it lies below it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func writeDocsJSON(w io.Writer, files []docFile, compact bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(files); err != nil {
		return fmt.Errorf("encode doc comments: %w", err)
	}
	return nil
}

func writeDocsText(w io.Writer, files []docFile, styles *pretty.Styles) error {
	var builder strings.Builder
	for _, file := range files {
		for _, c := range file.Comments {
			builder.WriteString(styles.FilePath.Render(file.Path))
			builder.WriteString(styles.Location.Render(fmt.Sprintf(":%d:%d", c.Line, c.Column)))
			if c.Markdown {
				builder.WriteString(styles.Dim.Render(" (markdown)"))
			}
			builder.WriteString("\n")

			if c.Declaration != "" {
				builder.WriteString("  " + styles.Bold.Render(c.Declaration) + "\n")
			}
			if summary := c.Summary(); summary != "" {
				builder.WriteString("  " + summary + "\n")
			}
			for _, tag := range c.Tags {
				line := "  " + styles.TokenDoc.Render(tag.Name)
				if tag.Value != "" {
					line += " " + styles.Code.Render(tag.Value)
				}
				if text := strings.Join(strings.Fields(tag.Text), " "); text != "" {
					line += " " + text
				}
				builder.WriteString(line + "\n")
			}
			for _, ref := range c.References {
				builder.WriteString(styles.Dim.Render(fmt.Sprintf("  -> %s %s", ref.Kind, ref.Target)) + "\n")
			}
			builder.WriteString("\n")
		}
	}

	if _, err := io.WriteString(w, builder.String()); err != nil {
		return fmt.Errorf("write doc comments: %w", err)
	}
	return nil
}

func writeDocsHTML(w io.Writer, files []docFile) error {
	renderer := doccomment.NewRenderer()

	var buf bytes.Buffer
	for _, file := range files {
		for i := range file.Comments {
			c := &file.Comments[i]
			fmt.Fprintf(&buf, "<section class=\"doc\" data-source=\"%s:%d\">\n", html.EscapeString(file.Path), c.Line)
			if c.Declaration != "" {
				fmt.Fprintf(&buf, "<h3><code>%s</code></h3>\n", html.EscapeString(c.Declaration))
			}
			if err := renderer.Render(&buf, c); err != nil {
				return err
			}
			buf.WriteString("</section>\n")
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write doc comments: %w", err)
	}
	return nil
}
