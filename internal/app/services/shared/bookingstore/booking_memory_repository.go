package bookingstore

import (
	"context"
	"roombook-service/internal/app/models"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository holds bookings in process memory. Err, when set, is
// returned by every call.
type MemoryRepository struct {
	mu       sync.Mutex
	bookings []models.Booking
	Err      error
}

func NewMemoryRepository(seed ...models.Booking) *MemoryRepository {
	return &MemoryRepository{bookings: slices.Clone(seed)}
}

func (repo *MemoryRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return nil, repo.Err
	}
	bookings := slices.Clone(repo.bookings)
	sortByStart(bookings)
	return bookings, nil
}

func (repo *MemoryRepository) Insert(ctx context.Context, booking *models.Booking) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return "", repo.Err
	}
	booking.ID = uuid.NewString()
	repo.bookings = append(repo.bookings, *booking)
	return booking.ID, nil
}

func (repo *MemoryRepository) DeleteByID(ctx context.Context, bookingID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.Err != nil {
		return false, repo.Err
	}
	before := len(repo.bookings)
	repo.bookings = slices.DeleteFunc(repo.bookings, func(b models.Booking) bool {
		return b.ID == bookingID
	})
	return len(repo.bookings) < before, nil
}

func (repo *MemoryRepository) SetErr(err error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.Err = err
}
