// Package cli implements the slabstock command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rpggio/slabstock/internal/app"
	"github.com/rpggio/slabstock/internal/cli/output"
	"github.com/rpggio/slabstock/internal/cli/prompt"
	"github.com/rpggio/slabstock/internal/config"
	"github.com/rpggio/slabstock/internal/logging"
	"github.com/rpggio/slabstock/internal/platform"
	"github.com/spf13/cobra"
)

// Version is injected at build time.
var Version = "dev"

// env holds the streams, flags and lazily opened inventory of one invocation.
type env struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	outputFlag string
	verbose    bool

	clipboard   platform.Clipboard
	delivery    platform.Delivery
	interactive func() bool
	confirm     func(label string, defaultYes bool) (bool, error)
	choose      func(label string, items []string) (string, error)
	ask         func(label, defaultValue string, validate func(string) error) (string, error)

	app      *app.App
	closeLog func() error
}

func newEnv(in io.Reader, out, errOut io.Writer) *env {
	e := &env{
		in:        in,
		out:       out,
		errOut:    errOut,
		clipboard: platform.SystemClipboard{},
		confirm:   prompt.Confirm,
		choose:    prompt.SelectString,
		ask:       prompt.Input,
	}
	e.interactive = func() bool { return isTerminal(e.in) }
	return e
}

// Execute runs the command line against the process streams.
func Execute(ctx context.Context) error {
	e := newEnv(os.Stdin, os.Stdout, os.Stderr)
	defer e.close()
	return newRootCmd(e).ExecuteContext(ctx)
}

func newRootCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slabstock",
		Short: "Granite slab inventory",
		Long: `slabstock records granite slabs, computes their area in square feet and
keeps them in a local store with CSV export and JSON import.

Use "slabstock [command] --help" for more information about a command.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := output.ParseFormat(e.outputFlag)
			return err
		},
	}
	cmd.SetIn(e.in)
	cmd.SetOut(e.out)
	cmd.SetErr(e.errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&e.configPath, "config", "", "Config file (default $SLABSTOCK_CONFIG_PATH)")
	flags.StringVarP(&e.outputFlag, "output", "o", "table", "Output format (table|json|yaml)")
	flags.BoolVarP(&e.verbose, "verbose", "v", false, "Log inventory activity to stderr")

	cmd.AddCommand(
		newAddCmd(e),
		newDeleteCmd(e),
		newListCmd(e),
		newBlocksCmd(e),
		newStatsCmd(e),
		newExportCmd(e),
		newImportCmd(e),
		newCopyCmd(e),
		newSchemaCmd(e),
		newServeCmd(e),
	)
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

func (e *env) printer() *output.Printer {
	format, err := output.ParseFormat(e.outputFlag)
	if err != nil {
		format = output.FormatTable
	}
	return output.NewPrinter(e.out, format)
}

func (e *env) loadConfig() (config.Config, error) {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// inventory opens the configured store. Logs go to stderr at warn level
// unless --verbose is set.
func (e *env) inventory(ctx context.Context) (*app.App, error) {
	if e.app != nil {
		return e.app, nil
	}
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, err
	}
	if !e.verbose && cfg.Log.Path == "" {
		cfg.Log.Level = "warn"
	}
	return e.open(ctx, cfg, app.Deps{
		Clipboard: e.clipboard,
		Delivery:  e.delivery,
		Notifier:  platform.NewWriterNotifier(e.errOut),
	})
}

func (e *env) open(ctx context.Context, cfg config.Config, deps app.Deps) (*app.App, error) {
	logger, closeLog := logging.New(logging.Options{
		Level:    cfg.Log.Level,
		Path:     cfg.Log.Path,
		Fallback: e.errOut,
	})
	a, err := app.New(ctx, cfg, logger, deps)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	e.app = a
	e.closeLog = closeLog
	return a, nil
}

func (e *env) close() error {
	var errs []error
	if e.app != nil {
		errs = append(errs, e.app.Close())
		e.app = nil
	}
	if e.closeLog != nil {
		errs = append(errs, e.closeLog())
		e.closeLog = nil
	}
	return errors.Join(errs...)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
