package model

import (
	"github.com/shopspring/decimal"

	"github.com/deppfellow/lightbnb/internal/validation"
)

// DefaultLimit caps list results when the caller passes a non-positive limit.
const DefaultLimit = 10

// SearchOptions enumerates the property search filters. Every field is
// optional (nil means "no filter") and all present filters are combined
// with AND.
//
//	City                 substring match against properties.city (case-sensitive LIKE); empty means no filter
//	OwnerID              exact match against properties.owner_id
//	MinimumPricePerNight cost_per_night >= value*100, rounded up
//	MaximumPricePerNight cost_per_night <= value*100, rounded down
//	MinimumRating        AVG(rating) >= value, applied after grouping
type SearchOptions struct {
	City                 *string          `json:"city,omitempty"`
	OwnerID              *int64           `json:"owner_id,omitempty" validate:"omitempty,gt=0"`
	MinimumPricePerNight *decimal.Decimal `json:"minimum_price_per_night,omitempty"`
	MaximumPricePerNight *decimal.Decimal `json:"maximum_price_per_night,omitempty"`
	MinimumRating        *float64         `json:"minimum_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// Validate checks tag rules and the price range.
func (o *SearchOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return err
	}

	var problems validation.CustomValidationErrors
	if o.MinimumPricePerNight != nil && o.MinimumPricePerNight.IsNegative() {
		problems = append(problems, validation.CustomValidationError{
			Field: "minimum_price_per_night", Message: "must not be negative",
		})
	}
	if o.MaximumPricePerNight != nil && o.MaximumPricePerNight.IsNegative() {
		problems = append(problems, validation.CustomValidationError{
			Field: "maximum_price_per_night", Message: "must not be negative",
		})
	}
	if o.MinimumPricePerNight != nil && o.MaximumPricePerNight != nil &&
		o.MinimumPricePerNight.GreaterThan(*o.MaximumPricePerNight) {
		problems = append(problems, validation.CustomValidationError{
			Field: "minimum_price_per_night", Message: "must not exceed maximum_price_per_night",
		})
	}
	if len(problems) > 0 {
		return problems
	}

	return nil
}

// NormalizeLimit returns DefaultLimit for non-positive limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
