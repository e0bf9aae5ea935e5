package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/cache"
	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository"
)

type fakeUserStore struct {
	users map[int64]*model.User
	added []model.NewUser
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*model.User{}}
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[id], nil
}

func (s *fakeUserStore) AddUser(_ context.Context, input model.NewUser) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.added = append(s.added, input)
	user := &model.User{ID: int64(len(s.users) + 1), Name: input.Name, Email: input.Email, Password: input.Password}
	s.users[user.ID] = user
	return user, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

type fakePropertyStore struct {
	searches int
	results  []model.PropertyWithRating
	created  []model.NewProperty
	err      error
}

func (s *fakePropertyStore) SearchProperties(_ context.Context, _ model.SearchOptions, _ int) ([]model.PropertyWithRating, error) {
	s.searches++
	return s.results, s.err
}

func (s *fakePropertyStore) AddProperty(_ context.Context, input model.NewProperty) (*model.Property, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, input)
	return &model.Property{ID: 1001, OwnerID: input.OwnerID, Title: input.Title, CostPerNight: model.ToMinorUnits(input.CostPerNight)}, nil
}

type fakeReservationStore struct {
	guestID int64
	limit   int
	results []model.ReservationSummary
}

func (s *fakeReservationStore) GetReservationsForGuest(_ context.Context, guestID int64, limit int) ([]model.ReservationSummary, error) {
	s.guestID, s.limit = guestID, limit
	return s.results, nil
}

func TestRegisterHashesPasswordAndQueuesWelcome(t *testing.T) {
	store := newFakeUserStore()
	jobs := &fakeEnqueuer{}
	svc := NewUserService(store, jobs, nil)

	user, err := svc.Register(context.Background(), model.NewUser{
		Name: "Ann", Email: "ann@x.com", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	require.Len(t, store.added, 1)
	assert.NotEqual(t, "correct horse", store.added[0].Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.added[0].Password), []byte("correct horse")))

	require.Len(t, jobs.tasks, 1)
	assert.Equal(t, job.TaskWelcome, jobs.tasks[0].Type())
}

func TestRegisterEnqueueFailureDoesNotFail(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), &fakeEnqueuer{err: errors.New("redis down")}, nil)

	user, err := svc.Register(context.Background(), model.NewUser{
		Name: "Ann", Email: "ann@x.com", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestRegisterWithoutJobs(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), nil, nil)

	_, err := svc.Register(context.Background(), model.NewUser{
		Name: "Ann", Email: "ann@x.com", Password: "correct horse",
	})
	assert.NoError(t, err)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil, nil)

	_, err := svc.Register(context.Background(), model.NewUser{Email: "nope", Password: "x"})
	assert.True(t, errors.Is(err, errs.ErrInvalid))
	assert.Empty(t, store.added)
}

func TestRegisterPropagatesConstraintViolation(t *testing.T) {
	store := newFakeUserStore()
	code := "USER_ALREADY_EXISTS"
	store.err = errs.NewConstraintViolationError("A User with this Email already exists", &code, nil, nil)
	svc := NewUserService(store, nil, nil)

	_, err := svc.Register(context.Background(), model.NewUser{
		Name: "Ann", Email: "ann@x.com", Password: "correct horse",
	})
	assert.True(t, errors.Is(err, errs.ErrConstraintViolation))
}

func TestGetByEmailAndID(t *testing.T) {
	store := newFakeUserStore()
	store.users[1] = &model.User{ID: 1, Name: "Devin Sanders", Email: "tristanjacobs@gmail.com"}
	svc := NewUserService(store, nil, nil)

	user, err := svc.GetByEmail(context.Background(), "tristanjacobs@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	user, err = svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Devin Sanders", user.Name)
}

func TestGetByEmailNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), nil, nil)

	_, err := svc.GetByEmail(context.Background(), "nobody@example.com")

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errs.KindNotFound, appErr.Kind)
	assert.Equal(t, "USER_NOT_FOUND", appErr.Code)

	_, err = svc.GetByID(context.Background(), 999999)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestPastForGuest(t *testing.T) {
	store := &fakeReservationStore{}
	svc := NewReservationService(store)

	reservations, err := svc.PastForGuest(context.Background(), 42, 0)
	require.NoError(t, err)
	assert.NotNil(t, reservations)
	assert.Empty(t, reservations)
	assert.Equal(t, int64(42), store.guestID)
	assert.Equal(t, 0, store.limit)
}

func TestPastForGuestRejectsNonPositiveID(t *testing.T) {
	svc := NewReservationService(&fakeReservationStore{})

	_, err := svc.PastForGuest(context.Background(), 0, 10)
	assert.True(t, errors.Is(err, errs.ErrInvalid))
}

func newSearchCache(t *testing.T) *cache.Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.New(client, "test:properties:search", time.Minute)
}

func validNewProperty() model.NewProperty {
	return model.NewProperty{
		OwnerID:           4,
		Title:             "Cozy loft",
		ThumbnailPhotoURL: "https://img/t.jpg",
		CoverPhotoURL:     "https://img/c.jpg",
		CostPerNight:      decimal.RequireFromString("150.00"),
		Street:            "1 Main St",
		City:              "Vancouver",
		Province:          "BC",
		PostCode:          "V5K",
		Country:           "Canada",
	}
}

func TestSearchUsesCache(t *testing.T) {
	store := &fakePropertyStore{results: []model.PropertyWithRating{
		{Property: model.Property{ID: 1, City: "Vancouver", CostPerNight: 10000}, AverageRating: 4.5},
	}}
	svc := NewPropertyService(store, newSearchCache(t), nil)
	city := "Vancouver"
	opts := model.SearchOptions{City: &city}

	first, err := svc.Search(context.Background(), opts, 10)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), opts, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, store.searches)
	assert.Equal(t, first, second)
}

func TestCreateInvalidatesSearchCache(t *testing.T) {
	store := &fakePropertyStore{results: []model.PropertyWithRating{}}
	svc := NewPropertyService(store, newSearchCache(t), nil)

	_, err := svc.Search(context.Background(), model.SearchOptions{}, 10)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), validNewProperty())
	require.NoError(t, err)
	assert.Equal(t, int64(15000), created.CostPerNight)

	_, err = svc.Search(context.Background(), model.SearchOptions{}, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, store.searches)
}

func TestSearchWithoutCache(t *testing.T) {
	store := &fakePropertyStore{}
	svc := NewPropertyService(store, nil, nil)

	properties, err := svc.Search(context.Background(), model.SearchOptions{}, 0)
	require.NoError(t, err)
	assert.NotNil(t, properties)
	assert.Empty(t, properties)
}

func TestSearchRejectsReversedPriceRange(t *testing.T) {
	store := &fakePropertyStore{}
	svc := NewPropertyService(store, nil, nil)
	low, high := decimal.NewFromInt(100), decimal.NewFromInt(300)

	_, err := svc.Search(context.Background(), model.SearchOptions{
		MinimumPricePerNight: &high,
		MaximumPricePerNight: &low,
	}, 10)
	assert.True(t, errors.Is(err, errs.ErrInvalid))
	assert.Equal(t, 0, store.searches)
}

func TestSearchPropagatesRepositoryError(t *testing.T) {
	store := &fakePropertyStore{err: errs.NewConnectionFailureError(nil)}
	svc := NewPropertyService(store, newSearchCache(t), nil)

	_, err := svc.Search(context.Background(), model.SearchOptions{}, 10)
	assert.True(t, errors.Is(err, errs.ErrConnectionFailure))
}

func TestCreateRejectsNonPositiveCost(t *testing.T) {
	store := &fakePropertyStore{}
	svc := NewPropertyService(store, nil, nil)
	input := validNewProperty()
	input.CostPerNight = decimal.NewFromInt(-5)

	_, err := svc.Create(context.Background(), input)

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errs.KindInvalid, appErr.Kind)
	assert.Equal(t, []errs.FieldError{{Field: "cost_per_night", Error: "must be greater than 0"}}, appErr.Errors)
	assert.Empty(t, store.created)
}

func TestNewServices(t *testing.T) {
	services := NewServices(repository.NewRepositories(nil, nil), Dependencies{})

	assert.NotNil(t, services.Users)
	assert.NotNil(t, services.Reservations)
	assert.NotNil(t, services.Properties)
}
