package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joseyose/udimgen"
	"github.com/joseyose/udimgen/internal/config"
	"github.com/joseyose/udimgen/internal/logging"
	"github.com/joseyose/udimgen/internal/sink"
)

// Exit codes.
const (
	exitOK = iota
	exitFailure
	exitInputNotFound
	exitInputEmpty
	exitSinkWrite
	exitValidation
)

// app holds flag values and the state built before a command runs.
type app struct {
	configPath string
	verbose    bool
	logFormat  string
	input      string
	output     string
	exclude    []string
	strict     bool
	format     string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(&app{}).ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "udimgen",
		Short: "Generate UDIM mip build rules from a texture manifest",
		Long: `udimgen reads a texture manifest (one filename per line, followed by
optional -ao, -nrm, -spec and -highprec flags) and writes the makefile
fragment that builds one UDIM mip per texture.

The fragment goes to stdout unless --output-file names a file or an
s3://bucket/key object.`,
		Example: `  udimgen -i textures.txt
  udimgen -i textures.txt -o mips.mk
  udimgen -i textures.txt --exclude '*_spec_*' --strict`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runGenerate,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log encoding: console or json")
	rootCmd.PersistentFlags().StringSliceVar(&a.exclude, "exclude", nil, "skip textures matching glob (repeatable)")

	addInputFlag(rootCmd, a)
	rootCmd.Flags().StringVarP(&a.output, "output-file", "o", "", "write to file or s3://bucket/key instead of stdout")
	rootCmd.Flags().BoolVar(&a.strict, "strict", false, "fail when validation reports errors")

	rootCmd.AddCommand(newInspectCmd(a), newCheckCmd(a))

	return rootCmd
}

// addInputFlag registers the required manifest path on cmd.
func addInputFlag(cmd *cobra.Command, a *app) {
	cmd.Flags().StringVarP(&a.input, "input-file", "i", "", "texture manifest to read (required)")
	_ = cmd.MarkFlagRequired("input-file")
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if len(a.exclude) > 0 {
		cfg.Parse.Exclude = append(cfg.Parse.Exclude, a.exclude...)
	}
	if a.strict {
		cfg.Strict = true
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	return nil
}

// decode reads the manifest and logs what was found.
func (a *app) decode() (*udimgen.Manifest, error) {
	m, err := udimgen.DecodeFile(a.input, a.cfg.ParseOptions())
	if err != nil {
		return nil, err
	}

	a.logger.Debug("manifest parsed",
		zap.String("input", a.input),
		zap.Int("textures", m.Len()),
		zap.Int("issues", len(m.Issues)),
	)

	return m, nil
}

// runGenerate writes the build script for the input manifest.
func (a *app) runGenerate(cmd *cobra.Command, _ []string) error {
	m, err := a.decode()
	if err != nil {
		return err
	}

	issues := udimgen.Validate(m, nil)
	a.report(m.Issues)
	a.report(issues)
	if a.cfg.Strict && udimgen.HasErrors(issues) {
		return fmt.Errorf("%w: %d error(s) in %s", udimgen.ErrValidation, countErrors(issues), a.input)
	}

	out, err := udimgen.Format(m, a.cfg.FormatOptions())
	if err != nil {
		return err
	}

	s, err := sink.Open(a.output, cmd.OutOrStdout(), a.cfg.Storage)
	if err != nil {
		return err
	}

	a.logger.Info("writing build script",
		zap.String("sink", s.String()),
		zap.Int("textures", m.Len()),
	)

	return s.Write(cmd.Context(), out)
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, udimgen.ErrInputNotFound):
		return exitInputNotFound
	case errors.Is(err, udimgen.ErrInputEmpty):
		return exitInputEmpty
	case errors.Is(err, udimgen.ErrSinkWrite):
		return exitSinkWrite
	case errors.Is(err, udimgen.ErrValidation):
		return exitValidation
	default:
		return exitFailure
	}
}
