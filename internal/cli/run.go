package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/utils"
	loggerPkg "github.com/deppfellow/lightbnb/internal/logger"
)

// operation is the body of a command. A non-nil result is written to
// stdout even when err is set, so partial reports (status) still reach
// the operator.
type operation func(ctx context.Context, a *app.App) (any, error)

// output drops the typed result of a failed call, so a nil pointer or
// slice is not printed as "null".
func output[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// run loads the container and executes op through invoke.
func (r *runner) run(cmd *cobra.Command, name string, op operation) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := r.load(ctx)
	if err != nil {
		return err
	}

	var nrApp *newrelic.Application
	if a.LoggerService != nil {
		nrApp = a.LoggerService.GetApplication()
	}

	return invoke(ctx, *a.Logger, nrApp, r.out, name, func(ctx context.Context) (any, error) {
		return op(ctx, a)
	})
}

// invoke is the shared execution pipeline of every command:
//
//   - New Relic transaction named after the command (when enabled)
//   - logger carrying the command name, a run id and trace ids
//   - timing of the whole invocation
//   - noticed errors on failure
//   - JSON output of the result
func invoke(
	ctx context.Context,
	base zerolog.Logger,
	nrApp *newrelic.Application,
	out io.Writer,
	name string,
	fn func(ctx context.Context) (any, error),
) error {
	start := time.Now()
	runID := uuid.NewString()

	var txn *newrelic.Transaction
	if nrApp != nil {
		txn = nrApp.StartTransaction("cli/" + name)
		defer txn.End()

		txn.AddAttribute("command.name", name)
		txn.AddAttribute("run.id", runID)
		ctx = newrelic.NewContext(ctx, txn)
	}

	logger := loggerPkg.WithTraceContext(base, txn).With().
		Str("command", name).
		Str("run_id", runID).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Debug().Msg("running command")

	result, err := fn(ctx)
	duration := time.Since(start)

	if result != nil {
		if writeErr := utils.WriteJSON(out, result); writeErr != nil && err == nil {
			err = writeErr
		}
	}

	if err != nil {
		event := logger.Error()
		if errors.Is(err, errs.ErrInvalid) {
			event = logger.Warn()
		}
		event.
			Err(err).
			Dur("total_duration", duration).
			Msg("command failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("command.status", "error")
			txn.AddAttribute("total.duration_ms", duration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("command.status", "success")
		txn.AddAttribute("total.duration_ms", duration.Milliseconds())
	}

	logger.Info().
		Dur("total_duration", duration).
		Msg("command completed successfully")

	return nil
}
