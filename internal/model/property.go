package model

import (
	"github.com/shopspring/decimal"

	"github.com/deppfellow/lightbnb/internal/validation"
)

// Property is a row of the properties table. CostPerNight is in minor
// currency units.
type Property struct {
	ID                int64  `db:"id" json:"id"`
	OwnerID           int64  `db:"owner_id" json:"owner_id"`
	Title             string `db:"title" json:"title"`
	Description       string `db:"description" json:"description"`
	ThumbnailPhotoURL string `db:"thumbnail_photo_url" json:"thumbnail_photo_url"`
	CoverPhotoURL     string `db:"cover_photo_url" json:"cover_photo_url"`
	CostPerNight      int64  `db:"cost_per_night" json:"cost_per_night"`
	Street            string `db:"street" json:"street"`
	City              string `db:"city" json:"city"`
	Province          string `db:"province" json:"province"`
	PostCode          string `db:"post_code" json:"post_code"`
	Country           string `db:"country" json:"country"`
	ParkingSpaces     int32  `db:"parking_spaces" json:"parking_spaces"`
	NumberOfBathrooms int32  `db:"number_of_bathrooms" json:"number_of_bathrooms"`
	NumberOfBedrooms  int32  `db:"number_of_bedrooms" json:"number_of_bedrooms"`
}

// PropertyWithRating is a search result: the property plus the average
// rating over its reviews.
type PropertyWithRating struct {
	Property
	AverageRating float64 `db:"average_rating" json:"average_rating"`
}

// NewProperty is the input of AddProperty. CostPerNight is given in
// major currency units and converted with ToMinorUnits before storage.
type NewProperty struct {
	OwnerID           int64           `json:"owner_id" validate:"required,gt=0"`
	Title             string          `json:"title" validate:"required,max=255"`
	Description       string          `json:"description"`
	ThumbnailPhotoURL string          `json:"thumbnail_photo_url" validate:"required,url"`
	CoverPhotoURL     string          `json:"cover_photo_url" validate:"required,url"`
	CostPerNight      decimal.Decimal `json:"cost_per_night"`
	Street            string          `json:"street" validate:"required"`
	City              string          `json:"city" validate:"required"`
	Province          string          `json:"province" validate:"required"`
	PostCode          string          `json:"post_code" validate:"required"`
	Country           string          `json:"country" validate:"required"`
	ParkingSpaces     int32           `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int32           `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int32           `json:"number_of_bedrooms" validate:"gte=0"`
}

// Validate checks the struct tags, then the nightly cost which the tag
// validator cannot inspect.
func (p *NewProperty) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if !p.CostPerNight.IsPositive() {
		return validation.CustomValidationErrors{
			{Field: "cost_per_night", Message: "must be greater than 0"},
		}
	}

	return nil
}
