package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"ctrl-ai/src/ai"
	"ctrl-ai/src/config"
	"ctrl-ai/src/runtimeinit"
	"ctrl-ai/src/session"
)

const (
	maxInputSizeMB = 1
	maxInputSize   = maxInputSizeMB * 1024 * 1024
)

type cliOptions struct {
	filePath    string
	mode        string
	instruction string
	provider    string
	envFile     string
	jsonOutput  bool
	copyResult  bool
	verbose     bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(normalizeLegacyArgs(os.Args), os.Stdin, os.Stdout)
}

func runWithArgs(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		args = []string{"ctrl-ai-cli"}
	}

	opts := &cliOptions{}
	cmd := newRootCmd(opts, stdin, stdout)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions, stdin io.Reader, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ctrl-ai-cli",
		Short:         "Rewrite or explain text from a file or stdin",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithOptions(cmd.Context(), *opts, stdin, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.filePath, "file", "-", "Path to a text file (use '-' for stdin)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(ai.ModeCommander), "commander or explain")
	cmd.Flags().StringVarP(&opts.instruction, "instruction", "i", "", "Instruction (commander, default \""+config.DefaultInstruction+"\") or question (explain)")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "AI provider: auto, gemini, groq or mock")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file (highest precedence)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.copyResult, "copy", false, "Copy the result to the clipboard instead of printing it")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")

	return cmd
}

func runWithOptions(ctx context.Context, opts cliOptions, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mode := ai.ParseMode(opts.mode)
	if mode != ai.ModeCommander && mode != ai.ModeExplain {
		return fmt.Errorf("unknown mode %q (want commander or explain)", opts.mode)
	}
	instruction := instructionFor(mode, opts.instruction)
	if opts.jsonOutput && opts.copyResult {
		return fmt.Errorf("--json and --copy are mutually exclusive")
	}

	noFileLog := false
	rt, err := runtimeinit.Bootstrap(ctx, runtimeinit.Options{
		LoadOptions: config.LoadOptions{
			EnvFileOverride:  opts.envFile,
			ProviderOverride: opts.provider,
		},
		Console:          opts.verbose,
		ForceFileLogging: &noFileLog,
		InitClipboard:    opts.copyResult,
	})
	if err != nil {
		return err
	}
	logger := rt.Logger
	defer func() { _ = logger.Sync() }()

	logger.Infof("Provider: %s, mode: %s", rt.Handler.Provider(), mode)

	text, source, err := readInput(opts.filePath, stdin)
	if err != nil {
		return err
	}
	logger.Infof("Read %d characters from %s", utf8.RuneCountInString(text), source)

	var target session.ResultTarget
	switch {
	case opts.jsonOutput:
		target = session.JSONTarget{Writer: stdout}
	case opts.copyResult:
		target = session.ClipboardTarget{}
	default:
		target = session.StdoutTarget{Writer: stdout}
	}

	res, err := session.Execute(ctx, session.Options{
		Text:        text,
		Mode:        mode,
		Instruction: instruction,
		Provider:    rt.Handler.Provider(),
		Source:      source,
		Deadline:    rt.Config.RequestTimeout(),
		Processor:   rt.Handler,
		Target:      target,
	})
	if err != nil {
		return err
	}
	logger.Infof("Completed in %v, %d characters", res.Elapsed, utf8.RuneCountInString(res.Text))
	return nil
}

// instructionFor applies the default instruction to commander only; an
// explain run without a question sends none.
func instructionFor(mode ai.Mode, given string) string {
	given = strings.TrimSpace(given)
	if given == "" && mode == ai.ModeCommander {
		return config.DefaultInstruction
	}
	return given
}

func readInput(filePath string, stdin io.Reader) (string, string, error) {
	var (
		data   []byte
		err    error
		source = filePath
	)
	if filePath == "" || filePath == "-" {
		source = "stdin"
		data, err = io.ReadAll(io.LimitReader(stdin, maxInputSize+1))
		if err != nil {
			return "", "", fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(filePath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", filePath, err)
		}
	}

	if len(data) > maxInputSize {
		return "", "", fmt.Errorf("input exceeds maximum size of %d MB", maxInputSizeMB)
	}
	if !utf8.Valid(data) {
		return "", "", fmt.Errorf("input is not valid UTF-8 text")
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", "", session.ErrEmptyInput
	}
	return string(data), source, nil
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	names := []string{"file", "mode", "instruction", "provider", "env-file", "json", "copy", "verbose"}
	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		for _, name := range names {
			switch {
			case arg == "-"+name:
				normalized[i] = "--" + name
			case strings.HasPrefix(arg, "-"+name+"="):
				normalized[i] = "-" + arg
			}
		}
	}

	return normalized
}
