package bookingstore

import (
	"cmp"
	"context"
	"fmt"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

const reloadTimeout = 10 * time.Second

// LiveStore keeps the latest booking snapshot in memory and pushes every
// replacement to its subscribers. Writes go through the repository and are
// announced on a Redis channel so every instance reloads.
type LiveStore struct {
	repo           contracts.BookingRepository
	redisRepo      contracts.RedisRepository
	log            *zap.Logger
	reloadInterval time.Duration

	mu          sync.RWMutex
	snapshot    []models.Booking
	subscribers map[uint64]func([]models.Booking)
	nextID      uint64

	// startedLoads numbers each Reload; appliedLoad is the newest one swapped in.
	startedLoads uint64
	appliedLoad  uint64
}

// NewLiveStore builds a store over repo. redisRepo may be nil, in which case
// only local writes refresh the snapshot.
func NewLiveStore(repo contracts.BookingRepository, redisRepo contracts.RedisRepository, logger *zap.Logger, reloadInterval time.Duration) *LiveStore {
	return &LiveStore{
		repo:           repo,
		redisRepo:      redisRepo,
		log:            logger,
		reloadInterval: reloadInterval,
		subscribers:    make(map[uint64]func([]models.Booking)),
	}
}

// Start loads the first snapshot and keeps following remote changes until ctx ends.
func (s *LiveStore) Start(ctx context.Context) error {
	if err := s.Reload(ctx); err != nil {
		return err
	}

	if s.redisRepo != nil {
		err := s.redisRepo.Subscribe(ctx, constvars.RedisChannelBookingsChanged, func(payload string) {
			reloadCtx, cancel := context.WithTimeout(ctx, reloadTimeout)
			defer cancel()
			if err := s.Reload(reloadCtx); err != nil {
				s.log.Error("LiveStore.Start error reloading after change notification",
					zap.String(constvars.LoggingRedisChannelKey, constvars.RedisChannelBookingsChanged),
					zap.Error(err),
				)
			}
		})
		if err != nil {
			return err
		}
	}

	if s.reloadInterval > 0 {
		go s.poll(ctx)
	}

	s.log.Info("LiveStore.Start succeeded",
		zap.Int(constvars.LoggingBookingCountKey, len(s.Snapshot())),
	)
	return nil
}

func (s *LiveStore) poll(ctx context.Context) {
	ticker := time.NewTicker(s.reloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reloadCtx, cancel := context.WithTimeout(ctx, reloadTimeout)
			if err := s.Reload(reloadCtx); err != nil {
				s.log.Error("LiveStore.poll error reloading snapshot", zap.Error(err))
			}
			cancel()
		}
	}
}

// Reload replaces the snapshot wholesale with the repository contents and
// notifies subscribers. A load that started before the one already applied
// is dropped, so the snapshot never moves back to older rows.
func (s *LiveStore) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.startedLoads++
	load := s.startedLoads
	s.mu.Unlock()

	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	sortByStart(bookings)

	s.mu.Lock()
	if load < s.appliedLoad {
		s.mu.Unlock()
		s.log.Debug("LiveStore.Reload dropped outdated load",
			zap.Uint64(constvars.LoggingSnapshotLoadKey, load),
		)
		return nil
	}
	s.appliedLoad = load
	s.snapshot = bookings
	handlers := make([]func([]models.Booking), 0, len(s.subscribers))
	for _, handler := range s.subscribers {
		handlers = append(handlers, handler)
	}
	s.mu.Unlock()

	for _, handler := range handlers {
		handler(slices.Clone(bookings))
	}
	return nil
}

// Subscribe hands the current snapshot to handler right away and then every
// replacement after it.
func (s *LiveStore) Subscribe(handler func(snapshot []models.Booking)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = handler
	current := slices.Clone(s.snapshot)
	count := len(s.subscribers)
	s.mu.Unlock()

	s.log.Info("LiveStore.Subscribe called", zap.Int(constvars.LoggingSubscriberCount, count))
	handler(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

func (s *LiveStore) Snapshot() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot)
}

func (s *LiveStore) Create(ctx context.Context, booking models.Booking) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("LiveStore.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingDateKey, booking.Date),
	)

	bookingID, err := s.repo.Insert(ctx, &booking)
	if err != nil {
		s.log.Error("LiveStore.Create error calling repo.Insert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrBookingCreateWrite(err)
	}

	s.announce(ctx)

	s.log.Info("LiveStore.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)
	return bookingID, nil
}

func (s *LiveStore) Delete(ctx context.Context, bookingID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("LiveStore.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	deleted, err := s.repo.DeleteByID(ctx, bookingID)
	if err != nil {
		s.log.Error("LiveStore.Delete error calling repo.DeleteByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrBookingDeleteWrite(err)
	}
	if !deleted {
		return exceptions.ErrBookingDeleteWrite(fmt.Errorf("booking %s does not exist", bookingID))
	}

	s.announce(ctx)

	s.log.Info("LiveStore.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)
	return nil
}

// announce refreshes the local snapshot and tells the other instances to do
// the same. The write already happened, so failures here are only logged.
func (s *LiveStore) announce(ctx context.Context) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if err := s.Reload(ctx); err != nil {
		s.log.Error("LiveStore.announce error reloading snapshot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if s.redisRepo == nil {
		return
	}
	err := s.redisRepo.Publish(ctx, constvars.RedisChannelBookingsChanged, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		s.log.Error("LiveStore.announce error publishing change notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisChannelKey, constvars.RedisChannelBookingsChanged),
			zap.Error(err),
		)
	}
}

func sortByStart(bookings []models.Booking) {
	slices.SortStableFunc(bookings, func(a, b models.Booking) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.StartTime, b.StartTime)
	})
}
