package repository

import "github.com/rs/zerolog"

// Repositories is a container for all repository instances.
//
// It is built once from the application's database pool and handed to
// the service layer.
type Repositories struct {
	Users        *UserRepository
	Reservations *ReservationRepository
	Properties   *PropertyRepository
}

// NewRepositories constructs the repository container over db.
func NewRepositories(db DBTX, log *zerolog.Logger) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db, log),
		Reservations: NewReservationRepository(db, log),
		Properties:   NewPropertyRepository(db, log),
	}
}
