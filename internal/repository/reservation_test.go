package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/lightbnb/internal/errs"
)

var reservationRowColumns = []string{
	"id", "guest_id", "property_id", "start_date", "end_date",
	"title", "thumbnail_photo_url", "cover_photo_url", "cost_per_night",
	"number_of_bedrooms", "number_of_bathrooms", "parking_spaces", "average_rating",
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGetReservationsForGuest(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReservationRepository(mock, nil)

	mock.ExpectQuery(`(?s)FROM reservations\s+JOIN properties .*WHERE reservations.guest_id = \$1\s+AND reservations.end_date < now\(\)::date.*ORDER BY reservations.start_date\s+LIMIT \$2`).
		WithArgs(int64(1), 10).
		WillReturnRows(mock.NewRows(reservationRowColumns).
			AddRow(int64(1), int64(1), int64(1), date(2018, 9, 11), date(2018, 9, 26),
				"Speed lamp", "https://img/thumb.jpg", "https://img/cover.jpg", int64(93061),
				int32(6), int32(4), int32(6), 3.0).
			AddRow(int64(2), int64(1), int64(2), date(2019, 1, 4), date(2019, 2, 1),
				"Blank corner", "https://img/thumb2.jpg", "https://img/cover2.jpg", int64(85234),
				int32(6), int32(6), int32(0), 4.5))

	reservations, err := repo.GetReservationsForGuest(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.True(t, reservations[0].StartDate.Before(reservations[1].StartDate))
	assert.Equal(t, "Speed lamp", reservations[0].Title)
	assert.Equal(t, int64(93061), reservations[0].CostPerNight)
	assert.InDelta(t, 4.5, reservations[1].AverageRating, 0.0001)
}

func TestGetReservationsForGuest_DefaultLimit(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReservationRepository(mock, nil)

	mock.ExpectQuery(`FROM reservations`).
		WithArgs(int64(42), 10).
		WillReturnRows(mock.NewRows(reservationRowColumns))

	reservations, err := repo.GetReservationsForGuest(context.Background(), 42, 0)
	require.NoError(t, err)
	assert.Empty(t, reservations)
}

func TestGetReservationsForGuest_QueryFailed(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReservationRepository(mock, nil)

	mock.ExpectQuery(`FROM reservations`).
		WithArgs(int64(1), 5).
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "reservations" does not exist`})

	reservations, err := repo.GetReservationsForGuest(context.Background(), 1, 5)
	assert.Nil(t, reservations)
	assert.True(t, errors.Is(err, errs.ErrQueryFailed))
}
