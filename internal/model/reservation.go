package model

import "time"

// ReservationSummary is a completed stay joined with a summary of the
// booked property and the property's average review rating.
type ReservationSummary struct {
	ID                int64     `db:"id" json:"id"`
	GuestID           int64     `db:"guest_id" json:"guest_id"`
	PropertyID        int64     `db:"property_id" json:"property_id"`
	StartDate         time.Time `db:"start_date" json:"start_date"`
	EndDate           time.Time `db:"end_date" json:"end_date"`
	Title             string    `db:"title" json:"title"`
	ThumbnailPhotoURL string    `db:"thumbnail_photo_url" json:"thumbnail_photo_url"`
	CoverPhotoURL     string    `db:"cover_photo_url" json:"cover_photo_url"`
	CostPerNight      int64     `db:"cost_per_night" json:"cost_per_night"`
	NumberOfBedrooms  int32     `db:"number_of_bedrooms" json:"number_of_bedrooms"`
	NumberOfBathrooms int32     `db:"number_of_bathrooms" json:"number_of_bathrooms"`
	ParkingSpaces     int32     `db:"parking_spaces" json:"parking_spaces"`
	AverageRating     float64   `db:"average_rating" json:"average_rating"`
}
