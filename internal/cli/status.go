package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/errs"
)

func newStatusCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check database and Redis connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, "status", func(ctx context.Context, a *app.App) (any, error) {
				report := a.HealthChecker().Run(ctx)
				if !report.Healthy() {
					return report, errs.NewConnectionFailureError(nil)
				}
				return report, nil
			})
		},
	}
}
