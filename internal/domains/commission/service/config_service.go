package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"renthub-backend/internal/domains/commission/model"
	"renthub-backend/internal/domains/commission/repository"
)

// =====================================================
// COMMISSION CONFIG SERVICE
// =====================================================

const (
	configCacheKey = "commission:config"
	configCacheTTL = 5 * time.Minute
)

type ConfigServiceInterface interface {
	// GetConfiguration returns the current platform commission setting
	GetConfiguration(ctx context.Context) (*model.Configuration, error)

	// UpdateConfiguration applies an admin change and invalidates the cache
	UpdateConfiguration(ctx context.Context, adminID uuid.UUID, req *model.UpdateConfigRequest) (*model.Configuration, error)

	// ComputeCommission computes the clamped commission for one rent amount
	// using the current configuration
	ComputeCommission(ctx context.Context, rent decimal.Decimal) (decimal.Decimal, *model.Configuration, error)
}

type configService struct {
	repo   repository.ConfigRepoInterface
	redis  *redis.Client
	logger zerolog.Logger
}

func NewConfigService(repo repository.ConfigRepoInterface, redisClient *redis.Client, logger zerolog.Logger) ConfigServiceInterface {
	return &configService{
		repo:   repo,
		redis:  redisClient,
		logger: logger.With().Str("service", "commission_config").Logger(),
	}
}

// GetConfiguration returns the current setting, cache first. Cache failures
// fall through to the database; the rate must always be readable.
func (s *configService) GetConfiguration(ctx context.Context) (*model.Configuration, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, configCacheKey).Result()
		if err == nil {
			config := &model.Configuration{}
			if err := json.Unmarshal([]byte(cached), config); err == nil {
				return config, nil
			}
			// Corrupt cache entry, drop it and reload
			s.redis.Del(ctx, configCacheKey)
		}
	}

	config, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheConfig(ctx, config)
	return config, nil
}

// UpdateConfiguration applies an admin change and invalidates the cache
func (s *configService) UpdateConfiguration(ctx context.Context, adminID uuid.UUID, req *model.UpdateConfigRequest) (*model.Configuration, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	config, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	config.Rate = req.Rate
	config.Floor = req.Floor
	config.Ceiling = req.Ceiling
	config.UpdatedBy = &adminID

	if err := s.repo.Update(ctx, config); err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, configCacheKey).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate commission config cache")
		}
	}

	s.logger.Info().
		Str("admin_id", adminID.String()).
		Str("rate", config.Rate.String()).
		Msg("commission configuration updated")

	return config, nil
}

// ComputeCommission computes the clamped commission for one rent amount
func (s *configService) ComputeCommission(ctx context.Context, rent decimal.Decimal) (decimal.Decimal, *model.Configuration, error) {
	config, err := s.GetConfiguration(ctx)
	if err != nil {
		return decimal.Zero, nil, err
	}

	commission, err := Compute(rent, config.Rate, config.Floor, config.Ceiling)
	if err != nil {
		return decimal.Zero, nil, err
	}

	return commission, config, nil
}

func (s *configService) cacheConfig(ctx context.Context, config *model.Configuration) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(config)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, configCacheKey, data, configCacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache commission config")
	}
}
