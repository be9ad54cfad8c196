package livestatus

import (
	"context"
	"roombook-service/internal/app/config"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/app/services/core/schedule"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// leaderTTL outlives one tick of the default @every 1m schedule so the
// leader keeps the lock between ticks by refreshing it.
const leaderTTL = 90 * time.Second

// Worker recomputes room occupancy every tick and after every booking change,
// caches it in Redis and announces flips on the event exchange. Only the
// instance holding the leader lock evaluates.
type Worker struct {
	log       *zap.Logger
	cfg       *config.InternalConfig
	locker    contracts.LockerService
	store     contracts.BookingStore
	redisRepo contracts.RedisRepository
	publisher contracts.BookingEventPublisher
	clock     utils.Clock

	cron        *cron.Cron
	runCtx      context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	changed     chan struct{}
	done        chan struct{}

	mu          sync.Mutex
	leaderToken string
	last        *models.LiveStatus
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	store contracts.BookingStore,
	redisRepo contracts.RedisRepository,
	publisher contracts.BookingEventPublisher,
	clock utils.Clock,
) *Worker {
	return &Worker{
		log:       log,
		cfg:       cfg,
		locker:    lockerSvc,
		store:     store,
		redisRepo: redisRepo,
		publisher: publisher,
		clock:     clock,
		changed:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Start schedules the periodic evaluation and follows the booking store.
func (w *Worker) Start(ctx context.Context) error {
	w.runCtx, w.cancel = context.WithCancel(ctx)

	c := cron.New()
	_, err := c.AddFunc(w.cfg.App.LiveStatusCronSpec, func() { w.tick(w.runCtx) })
	if err != nil {
		w.cancel()
		w.cancel = nil
		return err
	}

	go w.followChanges()
	w.unsubscribe = w.store.Subscribe(func(snapshot []models.Booking) {
		select {
		case w.changed <- struct{}{}:
		default:
		}
	})

	c.Start()
	w.cron = c

	w.tick(w.runCtx)
	return nil
}

// Stop halts the schedule, waits for a running evaluation and hands the
// leader lock back.
func (w *Worker) Stop() {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}

	w.mu.Lock()
	token := w.leaderToken
	w.leaderToken = ""
	w.mu.Unlock()

	if token != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := w.locker.Unlock(ctx, constvars.RedisKeyLiveStatusLeader, token); err != nil {
			w.log.Warn("livestatus.worker: failed to release leader lock", zap.Error(err))
		}
	}
}

func (w *Worker) followChanges() {
	defer close(w.done)
	for {
		select {
		case <-w.runCtx.Done():
			return
		case <-w.changed:
			if w.isLeader() {
				w.evaluate(w.runCtx)
			}
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	if !w.ensureLeadership(ctx) {
		return
	}
	w.evaluate(ctx)
}

// ensureLeadership refreshes a held leader lock or tries to take a free one.
func (w *Worker) ensureLeadership(ctx context.Context) bool {
	w.mu.Lock()
	token := w.leaderToken
	w.mu.Unlock()

	if token != "" {
		err := w.locker.Refresh(ctx, constvars.RedisKeyLiveStatusLeader, token, leaderTTL)
		if err == nil {
			return true
		}
		w.log.Warn("livestatus.worker: lost leader lock", zap.Error(err))
		w.setLeader("")
	}

	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyLiveStatusLeader, leaderTTL)
	if err != nil {
		w.log.Warn("livestatus.worker: leader lock attempt failed", zap.Error(err))
		return false
	}
	if !acquired {
		w.log.Debug("livestatus.worker: another instance is leader")
		return false
	}
	w.setLeader(token)
	return true
}

func (w *Worker) setLeader(token string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.leaderToken = token
	if token == "" {
		w.last = nil
	}
}

func (w *Worker) isLeader() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.leaderToken != ""
}

// evaluate is idempotent: the same snapshot and minute produce the same status
// and an unchanged occupancy publishes nothing.
func (w *Worker) evaluate(ctx context.Context) {
	status := schedule.LiveStatus(w.store.Snapshot(), w.clock.Now())

	err := w.redisRepo.Set(ctx, constvars.RedisKeyLiveStatus, status, 2*leaderTTL)
	if err != nil {
		w.log.Warn("livestatus.worker: failed to cache live status", zap.Error(err))
	}

	w.mu.Lock()
	flipped := w.last == nil || w.last.Occupied != status.Occupied || currentID(w.last) != currentID(&status)
	w.last = &status
	w.mu.Unlock()

	if !flipped {
		return
	}

	w.log.Info("livestatus.worker: room status changed",
		zap.Bool(constvars.LoggingOccupiedKey, status.Occupied),
		zap.String(constvars.LoggingEvaluatedAtKey, status.EvaluatedAt),
	)
	if err := w.publisher.PublishLiveStatus(ctx, status); err != nil {
		w.log.Warn("livestatus.worker: failed to publish live status", zap.Error(err))
	}
}

func currentID(status *models.LiveStatus) string {
	if status.CurrentBooking == nil {
		return ""
	}
	return status.CurrentBooking.ID
}
