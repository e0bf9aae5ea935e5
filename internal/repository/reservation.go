package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/lightbnb/internal/model"
)

// ReservationRepository reads reservations. It exposes no writes.
type ReservationRepository struct {
	baseRepository
}

func NewReservationRepository(db DBTX, log *zerolog.Logger) *ReservationRepository {
	return &ReservationRepository{baseRepository: newBaseRepository(db, log)}
}

// pastReservationsQuery joins reviews with an inner join, so a stay at a
// property without any review is not listed.
const pastReservationsQuery = `
	SELECT
		reservations.id,
		reservations.guest_id,
		reservations.property_id,
		reservations.start_date,
		reservations.end_date,
		properties.title,
		properties.thumbnail_photo_url,
		properties.cover_photo_url,
		properties.cost_per_night,
		properties.number_of_bedrooms,
		properties.number_of_bathrooms,
		properties.parking_spaces,
		AVG(property_reviews.rating)::float8 AS average_rating
	FROM reservations
	JOIN properties ON reservations.property_id = properties.id
	JOIN property_reviews ON properties.id = property_reviews.property_id
	WHERE reservations.guest_id = $1
		AND reservations.end_date < now()::date
	GROUP BY reservations.id,
		properties.title,
		properties.thumbnail_photo_url,
		properties.cover_photo_url,
		properties.cost_per_night,
		properties.number_of_bedrooms,
		properties.number_of_bathrooms,
		properties.parking_spaces
	ORDER BY reservations.start_date
	LIMIT $2`

// GetReservationsForGuest returns the guest's completed stays (end date
// strictly before today), oldest first, at most limit entries.
// A non-positive limit means model.DefaultLimit.
func (r *ReservationRepository) GetReservationsForGuest(ctx context.Context, guestID int64, limit int) ([]model.ReservationSummary, error) {
	rows, err := r.db.Query(ctx, pastReservationsQuery, guestID, model.NormalizeLimit(limit))
	if err != nil {
		return nil, r.fail(ctx, err, "get_reservations_for_guest")
	}

	reservations, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ReservationSummary])
	if err != nil {
		return nil, r.fail(ctx, err, "get_reservations_for_guest")
	}

	return reservations, nil
}
