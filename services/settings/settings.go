// File: kts/services/settings/settings.go
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	settingsRepo "kts/database/repository/settings"
	"kts/models"
	"kts/utils"

	"go.uber.org/zap"
)

const cacheKey = "settings:all"
const cacheTTL = 5 * time.Minute

// SettingsService is the site-settings accessor. Reads go through a Redis
// cache of the whole KV map; writes invalidate it.
type SettingsService interface {
	Get(key string) (string, error)
	GetAll() (map[string]string, error)
	Set(key, value string) error
	SlotConfig() (SlotConfig, error)
	GatewayConfig() (models.GatewayConfig, error)
}

// SlotConfig drives the booking wizard's time-slot list.
type SlotConfig struct {
	WorkingHoursStart string // "09:00"
	WorkingHoursEnd   string // "18:00"
	SlotDurationMin   int
}

// DefaultSettingsService is the production implementation.
type DefaultSettingsService struct {
	Repo settingsRepo.SettingsRepository
}

// GetAll returns the full settings map, served from cache when warm.
func (s *DefaultSettingsService) GetAll() (map[string]string, error) {
	ctx := context.Background()
	cache := utils.GetCacheClient()

	if data, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var m map[string]string
		if err := json.Unmarshal([]byte(data), &m); err == nil {
			return m, nil
		}
	}

	rows, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[row.Key] = row.Value
	}

	if data, err := json.Marshal(m); err == nil {
		if err := cache.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
			zap.L().Warn("failed to cache settings", zap.Error(err))
		}
	}
	return m, nil
}

// Get returns one setting value; empty string when unset.
func (s *DefaultSettingsService) Get(key string) (string, error) {
	m, err := s.GetAll()
	if err != nil {
		return "", err
	}
	return m[key], nil
}

// Set writes one setting and drops the cache.
func (s *DefaultSettingsService) Set(key, value string) error {
	if err := s.Repo.Set(key, value); err != nil {
		return err
	}
	ctx := context.Background()
	if err := utils.GetCacheClient().Del(ctx, cacheKey).Err(); err != nil {
		zap.L().Warn("failed to invalidate settings cache", zap.Error(err))
	}
	return nil
}

// SlotConfig assembles the working-hours window and slot duration, with the
// defaults the chat widget shipped with.
func (s *DefaultSettingsService) SlotConfig() (SlotConfig, error) {
	m, err := s.GetAll()
	if err != nil {
		return SlotConfig{}, err
	}

	cfg := SlotConfig{
		WorkingHoursStart: m[models.SettingWorkingHoursStart],
		WorkingHoursEnd:   m[models.SettingWorkingHoursEnd],
	}
	if v := m[models.SettingSlotDurationMin]; v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SlotDurationMin = n
		}
	}
	return cfg, nil
}

// GatewayConfig assembles the public payment-gateway configuration.
func (s *DefaultSettingsService) GatewayConfig() (models.GatewayConfig, error) {
	m, err := s.GetAll()
	if err != nil {
		return models.GatewayConfig{}, err
	}
	currency := m[models.SettingGatewayCurrency]
	if currency == "" {
		currency = "inr"
	}
	return models.GatewayConfig{
		Provider:  m[models.SettingGatewayProvider],
		PublicKey: m[models.SettingGatewayPublicKey],
		Currency:  currency,
		Enabled:   m[models.SettingGatewayEnabled] == "true",
	}, nil
}
