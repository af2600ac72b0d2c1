package sharing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ehsanhossain/VentureFlow-sub000/pkg/monitoring"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// DefaultConfigTTL bounds the staleness window between an admin config write
// and partner requests observing it
const DefaultConfigTTL = 10 * time.Minute

// ConfigStore reads and writes the per-entity-type sharing configuration,
// caching reads since the config changes rarely and is read on every
// partner-scoped request.
type ConfigStore struct {
	db    *gorm.DB
	cache Cache
	ttl   time.Duration
}

// NewConfigStore creates a config store backed by the given database and
// cache. A non-positive ttl falls back to DefaultConfigTTL.
func NewConfigStore(db *gorm.DB, cache Cache, ttl time.Duration) *ConfigStore {
	if ttl <= 0 {
		ttl = DefaultConfigTTL
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &ConfigStore{db: db, cache: cache, ttl: ttl}
}

func configCacheKey(entityType models.EntityType) string {
	return "sharing-config:" + string(entityType)
}

// Get returns the raw sharing configuration for an entity type. An absent
// configuration is not an error: a nil map resolves to the default-deny
// identifier-only field set downstream.
func (s *ConfigStore) Get(ctx context.Context, entityType models.EntityType) (models.FieldMap, error) {
	key := configCacheKey(entityType)

	if cached, ok := s.cache.Get(key); ok {
		monitoring.RecordCacheEvent(ctx, "sharing_config", true)
		fields, _ := cached.(models.FieldMap)
		return fields, nil
	}
	monitoring.RecordCacheEvent(ctx, "sharing_config", false)

	var config models.SharingConfig
	start := time.Now()
	err := s.db.WithContext(ctx).First(&config, "entity_type = ?", entityType).Error
	monitoring.RecordDBLatency(ctx, "postgres", "sharing_config_read", time.Since(start))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Info("No sharing configuration for entity type, defaulting to deny-all",
				"entity_type", entityType)
			s.cache.Put(key, models.FieldMap(nil), s.ttl)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sharing configuration: %w", err)
	}

	s.cache.Put(key, config.Fields, s.ttl)
	return config.Fields, nil
}

// Put replaces the sharing configuration for an entity type and overwrites
// the cache entry so the new allow-list takes effect without waiting for
// expiry.
func (s *ConfigStore) Put(ctx context.Context, entityType models.EntityType, fields models.FieldMap) error {
	config := models.SharingConfig{
		EntityType: string(entityType),
		Fields:     fields,
	}

	start := time.Now()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_type"}},
		UpdateAll: true,
	}).Create(&config).Error
	monitoring.RecordDBLatency(ctx, "postgres", "sharing_config_write", time.Since(start))

	if err != nil {
		return fmt.Errorf("failed to write sharing configuration: %w", err)
	}

	s.cache.Put(configCacheKey(entityType), fields, s.ttl)
	return nil
}
