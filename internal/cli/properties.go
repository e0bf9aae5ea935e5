package cli

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
)

func newPropertiesCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Search and create properties",
	}

	cmd.AddCommand(newPropertiesSearchCommand(r), newPropertiesAddCommand(r))
	return cmd
}

func newPropertiesSearchCommand(r *runner) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search properties, cheapest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := searchOptionsFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			return r.run(cmd, "properties.search", func(ctx context.Context, a *app.App) (any, error) {
				return output(a.Services.Properties.Search(ctx, opts, limit))
			})
		},
	}

	flags := cmd.Flags()
	flags.String("city", "", "substring of the city name")
	flags.Int64("owner-id", 0, "id of the owner")
	flags.String("min-price", "", "minimum price per night, e.g. 100 or 99.50")
	flags.String("max-price", "", "maximum price per night")
	flags.Float64("min-rating", 0, "minimum average rating (0-5)")
	flags.IntVar(&limit, "limit", model.DefaultLimit, "maximum number of properties")

	return cmd
}

// searchOptionsFromFlags maps every flag the operator set onto a filter.
// Flags left unset stay nil and do not filter.
func searchOptionsFromFlags(flags *pflag.FlagSet) (model.SearchOptions, error) {
	var opts model.SearchOptions

	if city, _ := flags.GetString("city"); flags.Changed("city") && city != "" {
		opts.City = &city
	}
	if flags.Changed("owner-id") {
		ownerID, _ := flags.GetInt64("owner-id")
		opts.OwnerID = &ownerID
	}
	if flags.Changed("min-price") {
		price, err := decimalFlag(flags, "min-price", "minimum_price_per_night")
		if err != nil {
			return opts, err
		}
		opts.MinimumPricePerNight = &price
	}
	if flags.Changed("max-price") {
		price, err := decimalFlag(flags, "max-price", "maximum_price_per_night")
		if err != nil {
			return opts, err
		}
		opts.MaximumPricePerNight = &price
	}
	if flags.Changed("min-rating") {
		rating, _ := flags.GetFloat64("min-rating")
		opts.MinimumRating = &rating
	}

	return opts, nil
}

func decimalFlag(flags *pflag.FlagSet, name, field string) (decimal.Decimal, error) {
	raw, _ := flags.GetString(name)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errs.NewInvalidError("Validation failed", []errs.FieldError{
			{Field: field, Error: "must be a decimal number"},
		})
	}
	return value, nil
}

func newPropertiesAddCommand(r *runner) *cobra.Command {
	var (
		input model.NewProperty
		cost  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			price, err := decimalFlag(cmd.Flags(), "cost-per-night", "cost_per_night")
			if err != nil {
				return err
			}
			input.CostPerNight = price

			return r.run(cmd, "properties.add", func(ctx context.Context, a *app.App) (any, error) {
				return output(a.Services.Properties.Create(ctx, input))
			})
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&input.OwnerID, "owner-id", 0, "id of the owning user")
	flags.StringVar(&input.Title, "title", "", "listing title")
	flags.StringVar(&input.Description, "description", "", "listing description")
	flags.StringVar(&input.ThumbnailPhotoURL, "thumbnail-photo-url", "", "thumbnail photo URL")
	flags.StringVar(&input.CoverPhotoURL, "cover-photo-url", "", "cover photo URL")
	flags.StringVar(&cost, "cost-per-night", "", "price per night in major units, e.g. 150.00")
	flags.StringVar(&input.Street, "street", "", "street address")
	flags.StringVar(&input.City, "city", "", "city")
	flags.StringVar(&input.Province, "province", "", "province or state")
	flags.StringVar(&input.PostCode, "post-code", "", "postal code")
	flags.StringVar(&input.Country, "country", "", "country")
	flags.Int32Var(&input.ParkingSpaces, "parking-spaces", 0, "number of parking spaces")
	flags.Int32Var(&input.NumberOfBathrooms, "bathrooms", 0, "number of bathrooms")
	flags.Int32Var(&input.NumberOfBedrooms, "bedrooms", 0, "number of bedrooms")
	_ = cmd.MarkFlagRequired("cost-per-night")

	return cmd
}
