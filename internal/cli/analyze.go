package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/sentimoji/internal/formatter"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

// maxInputSize bounds what is read from stdin
const maxInputSize = 1 << 20

var (
	analyzeTimeout    time.Duration
	analyzeShowAll    bool
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze the sentiment of text",
		Long: `Classify text and print its sentiment tier.

Arguments are joined with spaces. Without arguments the text is read
from stdin.

Examples:
  sentimoji analyze "I love this product"
  echo "The service was slow" | sentimoji analyze
  sentimoji analyze --all -o json "Not bad at all"`,
		RunE: runAnalyze,
	}

	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout (0 uses the configured value)")
	cmd.Flags().BoolVarP(&analyzeShowAll, "all", "a", false, "list every candidate label")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	if analyzeTimeout > 0 {
		cfg.AI.Timeout = analyzeTimeout
	}

	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	log := newLogger()
	client, err := newClient(log)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := client.Analyze(ctx, text)
	if err != nil {
		return analysisError(err)
	}

	f, err := formatter.New(getOutputFormat(), formatter.Options{
		Color:   isColorEnabled() && analyzeOutputFile == "",
		ShowAll: analyzeShowAll || cfg.Output.ShowAll,
	})
	if err != nil {
		return err
	}

	out, err := f.Format(outcome)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return writeOutput(cmd.OutOrStdout(), out)
}

// readInput joins args, or reads stdin when there are none
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Reading from stdin...\n")
	}

	data, err := io.ReadAll(io.LimitReader(stdin, maxInputSize))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// analysisError turns an analysis failure into the message shown to the user
func analysisError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return errors.New(sentiment.Message(err))
}

func writeOutput(stdout io.Writer, out []byte) error {
	if analyzeOutputFile == "" {
		_, err := stdout.Write(out)
		return err
	}

	cleanPath := filepath.Clean(analyzeOutputFile)
	if err := os.WriteFile(cleanPath, out, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output written to %s\n", cleanPath)
	}
	return nil
}
