// Package memory is an in-process UserStore. It backs the "memory" storage
// driver and the service and handler tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/safeguard/internal/models"
	"github.com/hongminglow/safeguard/internal/storage"
)

var _ storage.UserStore = (*Store)(nil)

// Store keeps users in maps guarded by a single mutex; the email index is
// checked and written inside one critical section.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
	now     func() time.Time
}

func NewUserStore() *Store {
	return &Store{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return models.User{}, storage.ErrAlreadyExists
	}
	user.ID = uuid.NewString()
	user.CreatedAt = s.now().UTC()
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return user, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *Store) FindByID(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// Len reports the number of stored users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() {}
