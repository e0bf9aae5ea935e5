// Package service contains the business logic.
//
// It sits between the command layer and repository layer.
// It validates input, performs business operations (password
// hashing, cache maintenance, follow-up jobs), and calls
// repository methods to interact with the data
package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
)

// UserStore is the repository surface UserService needs.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	AddUser(ctx context.Context, user model.NewUser) (*model.User, error)
}

// ReservationStore is the repository surface ReservationService needs.
type ReservationStore interface {
	GetReservationsForGuest(ctx context.Context, guestID int64, limit int) ([]model.ReservationSummary, error)
}

// PropertyStore is the repository surface PropertyService needs.
type PropertyStore interface {
	SearchProperties(ctx context.Context, opts model.SearchOptions, limit int) ([]model.PropertyWithRating, error)
	AddProperty(ctx context.Context, property model.NewProperty) (*model.Property, error)
}
