package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
)

type ReservationService struct {
	reservations ReservationStore
}

func NewReservationService(reservations ReservationStore) *ReservationService {
	return &ReservationService{reservations: reservations}
}

// PastForGuest lists the completed stays of a guest, earliest first.
// An empty result is not an error.
func (s *ReservationService) PastForGuest(ctx context.Context, guestID int64, limit int) ([]model.ReservationSummary, error) {
	if guestID <= 0 {
		return nil, errs.NewInvalidError("Validation failed", []errs.FieldError{
			{Field: "guest_id", Error: "must be greater than 0"},
		})
	}

	reservations, err := s.reservations.GetReservationsForGuest(ctx, guestID, limit)
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []model.ReservationSummary{}
	}

	return reservations, nil
}
