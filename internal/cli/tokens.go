package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/javalex/internal/logging"
)

// tokensFlags holds the flags for the tokens command.
type tokensFlags struct {
	scanFlags

	docs bool
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens [files...]",
		Short: "Print the token stream of Java source files",
		Long: `Tokenize Java source files and print every token with its position,
byte range, type and text. Diagnostics found while lexing are printed
after the tokens.

Pass "-" to read a single source from standard input.

Examples:
  javalex tokens Main.java                Dump the tokens of one file
  javalex tokens --docs Main.java         Expand doc comments into doc tokens
  javalex tokens --level 1.8 src/         Lex with Java 8 rules
  javalex tokens --format json - < A.java Dump standard input as JSON`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, flags)
		},
	}

	addScanFlags(cmd, &flags.scanFlags)
	cmd.Flags().BoolVar(&flags.docs, "docs", false, "Expand doc comments into doc-comment tokens")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, flags *tokensFlags) error {
	ctx := commandContext(cmd)

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	result, err := scan(ctx, cmd, cfg, workDir, args, scanOptions{keepTokens: true, expandDocs: flags.docs})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("tokenized",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldTokensTotal, result.Stats.TokensTotal,
	)

	return report(ctx, cmd, cfg, workDir, result, reportOptions{
		tokens:      true,
		showContext: !flags.noContext,
		showSummary: !flags.noSummary,
		compact:     flags.compact,
	})
}
