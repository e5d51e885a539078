// Package cache provides Redis caching for designs and their renderings.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/config"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

const (
	// Cache key prefixes
	designKeyPrefix = "design:"
	allDesignsKey   = "designs:all"
	svgKeyPrefix    = "design-svg:"

	// Default TTL for cached items
	defaultTTL = 5 * time.Minute
)

// Cache defines the interface for caching operations.
type Cache interface {
	// Get retrieves a design from cache by ID.
	Get(ctx context.Context, id string) (*models.Design, error)

	// GetAll retrieves all cached designs.
	GetAll(ctx context.Context) ([]models.Design, bool, error)

	// Set stores a design in cache.
	Set(ctx context.Context, design *models.Design) error

	// SetAll stores all designs in cache.
	SetAll(ctx context.Context, designs []models.Design) error

	// Delete removes a design from cache.
	Delete(ctx context.Context, id string) error

	// InvalidateAll removes the cached design list.
	InvalidateAll(ctx context.Context) error

	// GetSVG retrieves a rendered drawing for one revision of a design.
	GetSVG(ctx context.Context, key string) (string, bool, error)

	// SetSVG stores a rendered drawing.
	SetSVG(ctx context.Context, key, svg string) error

	// Close closes the cache connection.
	Close() error
}

// SVGKey identifies the drawing of a design revision. A design changes
// UpdatedAt on every mutation, so stale drawings are never served.
func SVGKey(design *models.Design) string {
	return design.ID + ":" + strconv.FormatInt(design.UpdatedAt.UnixNano(), 10)
}

// RedisCache implements Cache using Redis.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewRedisCache creates a new Redis cache.
func NewRedisCache(cfg *config.Config, logger *zap.Logger) (Cache, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis cache")

	return &RedisCache{
		client: client,
		logger: logger,
		ttl:    defaultTTL,
	}, nil
}

// Get retrieves a design from cache by ID.
func (c *RedisCache) Get(ctx context.Context, id string) (*models.Design, error) {
	key := designKeyPrefix + id

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		c.logger.Warn("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, nil // Treat errors as cache miss
	}

	var design models.Design
	if err := json.Unmarshal(data, &design); err != nil {
		c.logger.Warn("Failed to unmarshal cached design", zap.Error(err))
		return nil, nil
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return &design, nil
}

// GetAll retrieves all cached designs.
func (c *RedisCache) GetAll(ctx context.Context) ([]models.Design, bool, error) {
	data, err := c.client.Get(ctx, allDesignsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil // Cache miss
	}
	if err != nil {
		c.logger.Warn("Failed to get all from cache", zap.Error(err))
		return nil, false, nil
	}

	var designs []models.Design
	if err := json.Unmarshal(data, &designs); err != nil {
		c.logger.Warn("Failed to unmarshal cached designs", zap.Error(err))
		return nil, false, nil
	}

	c.logger.Debug("Cache hit for all designs")
	return designs, true, nil
}

// Set stores a design in cache.
func (c *RedisCache) Set(ctx context.Context, design *models.Design) error {
	key := designKeyPrefix + design.ID

	data, err := json.Marshal(design)
	if err != nil {
		c.logger.Warn("Failed to marshal design for cache", zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to set cache", zap.String("key", key), zap.Error(err))
		return err
	}

	// The list is stale once any design changes
	_ = c.InvalidateAll(ctx)

	c.logger.Debug("Cached design", zap.String("key", key))
	return nil
}

// SetAll stores all designs in cache.
func (c *RedisCache) SetAll(ctx context.Context, designs []models.Design) error {
	data, err := json.Marshal(designs)
	if err != nil {
		c.logger.Warn("Failed to marshal designs for cache", zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, allDesignsKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to set all cache", zap.Error(err))
		return err
	}

	c.logger.Debug("Cached all designs", zap.Int("count", len(designs)))
	return nil
}

// Delete removes a design from cache.
func (c *RedisCache) Delete(ctx context.Context, id string) error {
	key := designKeyPrefix + id

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return err
	}

	_ = c.InvalidateAll(ctx)

	c.logger.Debug("Deleted from cache", zap.String("key", key))
	return nil
}

// InvalidateAll removes the cached design list.
func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Del(ctx, allDesignsKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate all cache", zap.Error(err))
		return err
	}
	return nil
}

// GetSVG retrieves a rendered drawing.
func (c *RedisCache) GetSVG(ctx context.Context, key string) (string, bool, error) {
	svg, err := c.client.Get(ctx, svgKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		c.logger.Warn("Failed to get drawing from cache", zap.String("key", key), zap.Error(err))
		return "", false, nil
	}

	c.logger.Debug("Cache hit for drawing", zap.String("key", key))
	return svg, true, nil
}

// SetSVG stores a rendered drawing.
func (c *RedisCache) SetSVG(ctx context.Context, key, svg string) error {
	if err := c.client.Set(ctx, svgKeyPrefix+key, svg, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache drawing", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	c.logger.Info("Closing Redis connection")
	return c.client.Close()
}
