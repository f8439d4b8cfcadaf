// SPDX-License-Identifier: EPL-2.0

// Package cli holds the regionedit commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/regionedit/editor"
	"github.com/ik5/regionedit/engine"
	"github.com/ik5/regionedit/engine/beepengine"
	"github.com/ik5/regionedit/internal/config"
	"github.com/ik5/regionedit/internal/logging"
	"github.com/ik5/regionedit/internal/tui"
)

// EngineFactory builds the playback engine used by the edit command.
type EngineFactory func(cfg *config.Config, log *zap.Logger) (engine.Engine, error)

// UIRunner shows ed until the user quits.
type UIRunner func(ed *editor.Editor, title string, log *zap.Logger) error

func defaultEngine(cfg *config.Config, log *zap.Logger) (engine.Engine, error) {
	return beepengine.New(
		beepengine.WithSampleRate(cfg.SampleRate),
		beepengine.WithBuffer(cfg.SpeakerBuffer()),
		beepengine.WithLogger(log),
	)
}

func defaultUI(ed *editor.Editor, title string, log *zap.Logger) error {
	return tui.Run(ed, title, log)
}

// app carries what the commands share once the root has loaded the
// configuration.
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	newEngine EngineFactory
	runUI     UIRunner

	envFiles []string
	cfg      *config.Config
	log      *zap.Logger
}

type Option func(*app)

// WithOutput redirects command output.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *app) {
		a.stdout, a.stderr = stdout, stderr
	}
}

func WithEngineFactory(f EngineFactory) Option {
	return func(a *app) {
		if f != nil {
			a.newEngine = f
		}
	}
}

func WithUIRunner(r UIRunner) Option {
	return func(a *app) {
		if r != nil {
			a.runUI = r
		}
	}
}

// NewRootCmd returns the regionedit command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		newEngine: defaultEngine,
		runUI:     defaultUI,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:           "regionedit",
		Short:         "Select a region of an audio file, play it and trim to it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringSliceVar(&a.envFiles, "env-file", nil, "env files to load (default .env when present)")
	pf.String("log-level", "", "log level: debug, info, warn or error (env LOG_LEVEL)")
	pf.String("log-format", "", "log format: console or json (env LOG_FORMAT)")
	pf.String("log-file", "", "also log to this file, rotated (env LOG_FILE)")

	root.AddCommand(
		a.editCmd(),
		a.trimCmd(),
		a.plotCmd(),
		a.infoCmd(),
		a.convertCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, a.envFiles...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrideString(flags, "log-level", &cfg.LogLevel)
	overrideString(flags, "log-format", &cfg.LogFormat)
	overrideString(flags, "log-file", &cfg.LogFile)
	overrideString(flags, "policy", &cfg.RegionPolicy)
	overrideInt(flags, "sample-rate", &cfg.SampleRate)
	overrideInt(flags, "buffer-ms", &cfg.SpeakerBufferMS)
	overrideInt(flags, "width", &cfg.PlotWidth)
	overrideInt(flags, "height", &cfg.PlotHeight)

	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal UI owns the screen, so edit logs to the file only.
	console := a.stderr
	if cmd.Name() == editCommand {
		console = nil
	}

	log, err := logging.New(cfg.Logging(), console)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	a.cfg, a.log = cfg, log
	a.log.Debug("configuration loaded", zap.Stringer("config", cfg))
	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
