package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deppfellow/lightbnb/internal/app"
)

func newWorkerCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Process background jobs until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, "worker", func(ctx context.Context, a *app.App) (any, error) {
				if err := a.StartWorker(); err != nil {
					return nil, err
				}
				<-ctx.Done()
				return nil, nil
			})
		},
	}
}
