package store

import (
	"sync"

	"github.com/tlvflow/tlvflow/internal/domain"
)

// UserStore holds registered users keyed by user ID, with a secondary
// email index enforcing one account per email.
type UserStore struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]*domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (s *UserStore) Add(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; ok {
		return ErrConflict
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return ErrConflict
	}
	s.users[user.UserID] = user
	s.byEmail[user.Email] = user
	return nil
}

func (s *UserStore) Get(userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserStore) FindByEmail(email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
