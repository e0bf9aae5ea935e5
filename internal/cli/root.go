// Package cli is the command-line entry point of lightbnb.
//
// Every command shares one execution pipeline (run) that:
//   - lazily builds the application container on first use
//   - opens a New Relic transaction per invocation when enabled
//   - tags the logger with a run id and trace context
//   - writes the result as JSON to stdout
//   - turns *errs.Error into a JSON error document and an exit code
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/utils"
	loggerPkg "github.com/deppfellow/lightbnb/internal/logger"
)

// Exit codes not derived from an *errs.Error.
const (
	ExitOK    = 0
	ExitError = 1
)

// BootstrapFunc builds the application container.
type BootstrapFunc func(ctx context.Context) (*app.App, error)

// Options configures the root command. Zero values fall back to the
// process streams and Bootstrap.
type Options struct {
	Out       io.Writer
	Err       io.Writer
	Bootstrap BootstrapFunc
}

// Bootstrap loads configuration from the environment and opens every
// connection the commands need.
func Bootstrap(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	loggerService := loggerPkg.NewLoggerService(cfg.Observability)
	logger := loggerPkg.NewLoggerWithService(cfg.Observability, loggerService)

	a, err := app.New(ctx, cfg, &logger, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, errs.NewConnectionFailureError(err).WithMessage(err.Error())
	}

	return a, nil
}

type runner struct {
	out       io.Writer
	bootstrap BootstrapFunc
	app       *app.App
}

func (r *runner) load(ctx context.Context) (*app.App, error) {
	if r.app != nil {
		return r.app, nil
	}

	a, err := r.bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	r.app = a
	return a, nil
}

func (r *runner) close() {
	if r.app == nil {
		return
	}
	if err := r.app.Shutdown(); err != nil {
		r.app.Logger.Error().Err(err).Msg("shutdown failed")
	}
	r.app = nil
}

// NewRootCommand builds the command tree. The returned cleanup releases
// the application container if a command created it.
func NewRootCommand(opts Options) (*cobra.Command, func()) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Bootstrap == nil {
		opts.Bootstrap = Bootstrap
	}

	r := &runner{out: opts.Out, bootstrap: opts.Bootstrap}

	root := &cobra.Command{
		Use:           "lightbnb",
		Short:         "Query and update the LightBnB database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(flagError)
	root.SetOut(opts.Out)
	if opts.Err != nil {
		root.SetErr(opts.Err)
	}

	root.AddCommand(
		newUsersCommand(r),
		newReservationsCommand(r),
		newPropertiesCommand(r),
		newStatusCommand(r),
		newWorkerCommand(r),
	)

	return root, r.close
}

// Execute runs the command line args and returns the process exit code.
// Failures are written to stderr as JSON.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, cleanup := NewRootCommand(Options{Out: stdout, Err: stderr})
	defer cleanup()

	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	return reportError(stderr, err)
}

// reportError prints err as JSON and maps it onto an exit code.
func reportError(w io.Writer, err error) int {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		_ = utils.WriteJSON(w, appErr)
		return appErr.ExitCode()
	}

	_ = utils.WriteJSON(w, map[string]string{
		"code":    "ERROR",
		"message": err.Error(),
	})
	return ExitError
}

// flagError marks malformed flags as invalid input.
func flagError(_ *cobra.Command, err error) error {
	return errs.NewInvalidError(err.Error(), nil)
}
