package users

import (
	"context"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/exceptions"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory, keyed by lowercased email.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (repo *MemoryRepository) Insert(ctx context.Context, userModel *models.User) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	key := strings.ToLower(userModel.Email)
	if _, exists := repo.users[key]; exists {
		return "", exceptions.ErrEmailAlreadyExist(nil)
	}
	userModel.ID = uuid.NewString()
	repo.users[key] = *userModel
	return userModel.ID, nil
}

func (repo *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return &user, nil
}
