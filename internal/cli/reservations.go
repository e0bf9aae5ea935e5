package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/model"
)

func newReservationsCommand(r *runner) *cobra.Command {
	var (
		guestID int64
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List the completed stays of a guest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, "reservations.past", func(ctx context.Context, a *app.App) (any, error) {
				return output(a.Services.Reservations.PastForGuest(ctx, guestID, limit))
			})
		},
	}

	cmd.Flags().Int64Var(&guestID, "guest-id", 0, "id of the guest")
	cmd.Flags().IntVar(&limit, "limit", model.DefaultLimit, "maximum number of reservations")
	_ = cmd.MarkFlagRequired("guest-id")

	return cmd
}
