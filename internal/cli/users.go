package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/model"
)

func newUsersCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Look up and register users",
	}

	cmd.AddCommand(newUsersGetCommand(r), newUsersAddCommand(r))
	return cmd
}

func newUsersGetCommand(r *runner) *cobra.Command {
	var (
		email string
		id    int64
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print a user by email or id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			byEmail := cmd.Flags().Changed("email")
			return r.run(cmd, "users.get", func(ctx context.Context, a *app.App) (any, error) {
				if byEmail {
					return output(a.Services.Users.GetByEmail(ctx, email))
				}
				return output(a.Services.Users.GetByID(ctx, id))
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "exact email address")
	cmd.Flags().Int64Var(&id, "id", 0, "user id")
	cmd.MarkFlagsOneRequired("email", "id")
	cmd.MarkFlagsMutuallyExclusive("email", "id")

	return cmd
}

func newUsersAddCommand(r *runner) *cobra.Command {
	var input model.NewUser

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user and queue the welcome email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd, "users.add", func(ctx context.Context, a *app.App) (any, error) {
				return output(a.Services.Users.Register(ctx, input))
			})
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "plain-text password, hashed before storage")
	for _, name := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
