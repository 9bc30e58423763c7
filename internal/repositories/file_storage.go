package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// fileStorage keeps one JSON object per profile: {"cartItems": "...", "token": "..."}.
type fileStorage struct {
	dir string
	mu  sync.Mutex
}

func NewFileStorage(dir string) (LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &fileStorage{dir: dir}, nil
}

func (s *fileStorage) path(profileID string) string {
	return filepath.Join(s.dir, profileID+".json")
}

// read returns an empty map for a missing or unreadable document; a corrupt
// file is overwritten on the next write.
func (s *fileStorage) read(profileID string) (map[string]string, error) {
	data, err := os.ReadFile(s.path(profileID))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	items := map[string]string{}
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Discarding corrupt storage file for profile %s: %v", profileID, err)
		return map[string]string{}, nil
	}
	return items, nil
}

func (s *fileStorage) write(profileID string, items map[string]string) error {
	if len(items) == 0 {
		err := os.Remove(s.path(profileID))
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, profileID+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(profileID))
}

func (s *fileStorage) GetItem(ctx context.Context, profileID, key string) (string, bool, error) {
	if err := validateProfileID(profileID); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read(profileID)
	if err != nil {
		return "", false, err
	}
	val, ok := items[key]
	return val, ok, nil
}

func (s *fileStorage) SetItem(ctx context.Context, profileID, key, value string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read(profileID)
	if err != nil {
		return err
	}
	items[key] = value
	return s.write(profileID, items)
}

func (s *fileStorage) RemoveItem(ctx context.Context, profileID, key string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read(profileID)
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.write(profileID, items)
}
