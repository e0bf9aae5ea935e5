package service

import (
	"github.com/rs/zerolog"

	"github.com/deppfellow/lightbnb/internal/lib/cache"
	"github.com/deppfellow/lightbnb/internal/repository"
)

// Services groups every service so the command layer receives one object.
type Services struct {
	Users        *UserService
	Reservations *ReservationService
	Properties   *PropertyService
}

// Dependencies are the optional collaborators of the services. A nil
// Jobs disables welcome emails; a nil SearchCache disables caching.
type Dependencies struct {
	Jobs        TaskEnqueuer
	SearchCache *cache.Cache
	Logger      *zerolog.Logger
}

func NewServices(repos *repository.Repositories, deps Dependencies) *Services {
	return &Services{
		Users:        NewUserService(repos.Users, deps.Jobs, deps.Logger),
		Reservations: NewReservationService(repos.Reservations),
		Properties:   NewPropertyService(repos.Properties, deps.SearchCache, deps.Logger),
	}
}

func loggerOrNop(logger *zerolog.Logger) *zerolog.Logger {
	if logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return logger
}
