package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocalStorageEntry is one (profile, key) row.
type LocalStorageEntry struct {
	ProfileID string `gorm:"primaryKey;size:64"`
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (LocalStorageEntry) TableName() string {
	return "local_storage_entries"
}

type postgresStorage struct {
	db *gorm.DB
}

func NewPostgresStorage(db *gorm.DB) LocalStorage {
	return &postgresStorage{db: db}
}

func (s *postgresStorage) GetItem(ctx context.Context, profileID, key string) (string, bool, error) {
	if err := validateProfileID(profileID); err != nil {
		return "", false, err
	}
	var entry LocalStorageEntry
	err := s.db.WithContext(ctx).
		Where("profile_id = ? AND key = ?", profileID, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *postgresStorage) SetItem(ctx context.Context, profileID, key, value string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	entry := LocalStorageEntry{
		ProfileID: profileID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *postgresStorage) RemoveItem(ctx context.Context, profileID, key string) error {
	if err := validateProfileID(profileID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("profile_id = ? AND key = ?", profileID, key).
		Delete(&LocalStorageEntry{}).Error
}
