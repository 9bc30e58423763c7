package repositories

import (
	"context"
	"sync"
)

type memoryStorage struct {
	mu       sync.RWMutex
	profiles map[string]map[string]string
}

// NewMemoryStorage keeps everything in process memory; state is lost on restart.
func NewMemoryStorage() LocalStorage {
	return &memoryStorage{profiles: make(map[string]map[string]string)}
}

func (s *memoryStorage) GetItem(ctx context.Context, profileID, key string) (string, bool, error) {
	if err := validateProfileID(profileID); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.profiles[profileID][key]
	return val, ok, nil
}

func (s *memoryStorage) SetItem(ctx context.Context, profileID, key, value string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.profiles[profileID]
	if !ok {
		items = make(map[string]string)
		s.profiles[profileID] = items
	}
	items[key] = value
	return nil
}

func (s *memoryStorage) RemoveItem(ctx context.Context, profileID, key string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles[profileID], key)
	if len(s.profiles[profileID]) == 0 {
		delete(s.profiles, profileID)
	}
	return nil
}
