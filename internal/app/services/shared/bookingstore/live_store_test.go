package bookingstore

import (
	"context"
	"errors"
	"roombook-service/internal/app/models"
	"roombook-service/internal/app/services/core/schedule"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) GetInto(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	return m.Called(ctx, key, exp).Error(0)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) Publish(ctx context.Context, channel string, message interface{}) error {
	return m.Called(ctx, channel, message).Error(0)
}

func (m *MockRedisRepository) Subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	return m.Called(ctx, channel, handler).Error(0)
}

// blockingRepository reads its rows on the first FindAll and then waits for
// release before returning them.
type blockingRepository struct {
	*MemoryRepository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newBlockingRepository() *blockingRepository {
	return &blockingRepository{
		MemoryRepository: NewMemoryRepository(),
		entered:          make(chan struct{}),
		release:          make(chan struct{}),
	}
}

func (repo *blockingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	bookings, err := repo.MemoryRepository.FindAll(ctx)
	first := false
	repo.once.Do(func() { first = true })
	if first {
		close(repo.entered)
		<-repo.release
	}
	return bookings, err
}

func seedBooking(id, date, start, end string) models.Booking {
	return models.Booking{
		ID:        id,
		Title:     "Standup",
		Organizer: "Ops",
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Type:      constvars.BookingTypeInternal,
		BookedBy:  "Alex",
		UserID:    "user-1",
	}
}

func TestLiveStore_ReloadOrdersByStart(t *testing.T) {
	repo := NewMemoryRepository(
		seedBooking("b", "2024-01-02", "13:00", "14:00"),
		seedBooking("c", "2024-01-01", "15:00", "15:30"),
		seedBooking("a", "2024-01-02", "09:00", "10:00"),
	)
	store := NewLiveStore(repo, nil, zap.NewNop(), 0)

	require.NoError(t, store.Reload(context.Background()))

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "c", snapshot[0].ID)
	assert.Equal(t, "a", snapshot[1].ID)
	assert.Equal(t, "b", snapshot[2].ID)
}

func TestLiveStore_SnapshotIsCopy(t *testing.T) {
	repo := NewMemoryRepository(seedBooking("a", "2024-01-02", "09:00", "10:00"))
	store := NewLiveStore(repo, nil, zap.NewNop(), 0)
	require.NoError(t, store.Reload(context.Background()))

	snapshot := store.Snapshot()
	snapshot[0].Title = "changed"

	assert.Equal(t, "Standup", store.Snapshot()[0].Title)
}

func TestLiveStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	store := NewLiveStore(repo, nil, zap.NewNop(), 0)
	require.NoError(t, store.Reload(ctx))

	var mu sync.Mutex
	var received [][]models.Booking
	unsubscribe := store.Subscribe(func(snapshot []models.Booking) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, snapshot)
	})

	t.Run("delivers current snapshot immediately", func(t *testing.T) {
		mu.Lock()
		defer mu.Unlock()
		require.Len(t, received, 1)
		assert.Empty(t, received[0])
	})

	t.Run("delivers every replacement", func(t *testing.T) {
		_, err := store.Create(ctx, seedBooking("", "2024-01-02", "09:00", "10:00"))
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, received, 2)
		assert.Len(t, received[1], 1)
	})

	t.Run("unsubscribe is idempotent and stops delivery", func(t *testing.T) {
		unsubscribe()
		unsubscribe()

		_, err := store.Create(ctx, seedBooking("", "2024-01-02", "11:00", "12:00"))
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.Len(t, received, 2)
	})
}

func TestLiveStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("writes through and announces the change", func(t *testing.T) {
		repo := NewMemoryRepository()
		redisRepo := new(MockRedisRepository)
		redisRepo.On("Publish", mock.Anything, constvars.RedisChannelBookingsChanged, mock.Anything).Return(nil).Once()

		store := NewLiveStore(repo, redisRepo, zap.NewNop(), 0)
		id, err := store.Create(ctx, seedBooking("", "2024-01-02", "09:00", "10:00"))

		require.NoError(t, err)
		assert.NotEmpty(t, id)
		require.Len(t, store.Snapshot(), 1)
		assert.Equal(t, id, store.Snapshot()[0].ID)
		redisRepo.AssertExpectations(t)
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		repo := NewMemoryRepository()
		redisRepo := new(MockRedisRepository)
		redisRepo.On("Publish", mock.Anything, constvars.RedisChannelBookingsChanged, mock.Anything).Return(errors.New("redis down"))

		store := NewLiveStore(repo, redisRepo, zap.NewNop(), 0)
		_, err := store.Create(ctx, seedBooking("", "2024-01-02", "09:00", "10:00"))

		require.NoError(t, err)
		assert.Len(t, store.Snapshot(), 1)
	})

	t.Run("repository failure is a write error", func(t *testing.T) {
		repo := NewMemoryRepository()
		repo.SetErr(errors.New("network unreachable"))

		store := NewLiveStore(repo, nil, zap.NewNop(), 0)
		_, err := store.Create(ctx, seedBooking("", "2024-01-02", "09:00", "10:00"))

		require.Error(t, err)
		assert.True(t, exceptions.IsWriteError(err))
		assert.Equal(t, constvars.ErrClientFailedToSaveBooking, err.(*exceptions.CustomError).ClientMessage)
	})
}

func TestLiveStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the booking", func(t *testing.T) {
		repo := NewMemoryRepository(seedBooking("a", "2024-01-02", "09:00", "10:00"))
		store := NewLiveStore(repo, nil, zap.NewNop(), 0)
		require.NoError(t, store.Reload(ctx))

		require.NoError(t, store.Delete(ctx, "a"))
		assert.Empty(t, store.Snapshot())
	})

	t.Run("unknown id is a write error", func(t *testing.T) {
		store := NewLiveStore(NewMemoryRepository(), nil, zap.NewNop(), 0)

		err := store.Delete(ctx, "missing")

		require.Error(t, err)
		assert.True(t, exceptions.IsWriteError(err))
	})
}

func TestLiveStore_StartFollowsRemoteChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := NewMemoryRepository()
	redisRepo := new(MockRedisRepository)

	var notify func(payload string)
	redisRepo.On("Subscribe", mock.Anything, constvars.RedisChannelBookingsChanged, mock.Anything).
		Run(func(args mock.Arguments) {
			notify = args.Get(2).(func(payload string))
		}).
		Return(nil)

	store := NewLiveStore(repo, redisRepo, zap.NewNop(), 0)
	require.NoError(t, store.Start(ctx))
	require.NotNil(t, notify)
	assert.Empty(t, store.Snapshot())

	// Another instance wrote directly to the shared repository.
	_, err := repo.Insert(ctx, &models.Booking{Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	notify("2024-01-02T09:00:00Z")

	assert.Len(t, store.Snapshot(), 1)
}

func TestLiveStore_ReloadStartedBeforeWriteIsDropped(t *testing.T) {
	ctx := context.Background()
	repo := newBlockingRepository()
	store := NewLiveStore(repo, nil, zap.NewNop(), 0)

	reloaded := make(chan error, 1)
	go func() {
		reloaded <- store.Reload(ctx)
	}()
	<-repo.entered

	_, err := store.Create(ctx, seedBooking("", "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)
	require.Len(t, store.Snapshot(), 1)

	close(repo.release)
	require.NoError(t, <-reloaded)

	assert.Len(t, store.Snapshot(), 1)
	conflict, err := schedule.HasConflict(store.Snapshot(), "2024-01-01", "10:30", "11:30")
	require.NoError(t, err)
	assert.True(t, conflict)
}
