package services

import (
	"sync"

	"gorm.io/gorm"

	"github.com/example/giftola/internal/models"
)

// SettingsService serves the singleton settings row with an in-process cache.
// Admin updates invalidate the cache explicitly.
type SettingsService struct {
	db     *gorm.DB
	mu     sync.RWMutex
	cached *models.Settings
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the settings row, fetching it on first use.
func (s *SettingsService) Get() (*models.Settings, error) {
	s.mu.RLock()
	if s.cached != nil {
		cached := s.cached
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check again in case another request loaded while we waited for the lock.
	if s.cached != nil {
		return s.cached, nil
	}

	var settings models.Settings
	if err := s.db.First(&settings, "id = ?", models.SettingsID).Error; err != nil {
		return nil, err
	}

	s.cached = &settings
	return s.cached, nil
}

// Invalidate drops the cached row so the next Get rereads the store.
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Update applies column updates to the settings row and invalidates the cache.
func (s *SettingsService) Update(updates map[string]interface{}) error {
	if err := s.db.Model(&models.Settings{}).Where("id = ?", models.SettingsID).Updates(updates).Error; err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Reset restores the default settings row.
func (s *SettingsService) Reset() error {
	defaults := models.DefaultSettings()
	if err := s.db.Model(&models.Settings{}).Where("id = ?", models.SettingsID).Updates(map[string]interface{}{
		"brevo_key":       defaults.BrevoKey,
		"rainforest_key":  defaults.RainforestKey,
		"gpt_key":         defaults.GPTKey,
		"affiliate_tag":   defaults.AffiliateTag,
		"gift_count":      defaults.GiftCount,
		"prompt_template": defaults.PromptTemplate,
	}).Error; err != nil {
		return err
	}
	s.Invalidate()
	return nil
}
