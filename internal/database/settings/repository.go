// Package settings stores key-value rows and implements storage.Store.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	value, err := repo.Get("selected_source_language")
package settings

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/storage"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

var _ storage.Store = (*Repository)(nil)

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting row by key.
func (r *Repository) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Get returns the stored value or storage.ErrNotFound.
func (r *Repository) Get(key string) (string, error) {
	setting, err := r.GetSetting(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Set creates or updates a setting.
func (r *Repository) Set(key, value string) error {
	var setting entities.Setting
	result := r.db.Where("key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			Key:   key,
			Value: value,
		}
		return r.db.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return r.db.Save(&setting).Error
}

// Remove deletes a setting by key.
func (r *Repository) Remove(key string) error {
	return r.db.Where("key = ?", key).Delete(&entities.Setting{}).Error
}
