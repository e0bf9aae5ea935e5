package service

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
)

// TaskEnqueuer is the producer side of the job queue. *asynq.Client
// implements it.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type UserService struct {
	users  UserStore
	jobs   TaskEnqueuer
	logger *zerolog.Logger
}

func NewUserService(users UserStore, jobs TaskEnqueuer, logger *zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		jobs:   jobs,
		logger: loggerOrNop(logger),
	}
}

// Register validates the input, hashes the password and stores the user.
// A welcome email is queued afterwards; failing to queue it does not fail
// the registration.
func (s *UserService) Register(ctx context.Context, input model.NewUser) (*model.User, error) {
	if err := validation.Validate(&input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.ValidationError(err)
	}
	input.Password = string(hash)

	user, err := s.users.AddUser(ctx, input)
	if err != nil {
		return nil, err
	}

	s.enqueueWelcome(ctx, user)

	return user, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, user *model.User) {
	if s.jobs == nil {
		return
	}

	task, err := job.NewWelcomeEmailTask(user.Email, user.Name)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to build welcome email task")
		return
	}

	info, err := s.jobs.EnqueueContext(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to enqueue welcome email task")
		return
	}

	s.logger.Debug().Str("task_id", info.ID).Int64("user_id", user.ID).Msg("welcome email task enqueued")
}

// GetByEmail returns the user with the given email or a not-found error.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}

// GetByID returns the user with the given id or a not-found error.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}

func userNotFound() *errs.Error {
	code := "USER_NOT_FOUND"
	return errs.NewNotFoundError("User not found", &code)
}
