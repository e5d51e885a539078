package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/config"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

func TestSVGKeyTracksRevision(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := &models.Design{ID: "design_1", UpdatedAt: at}

	first := SVGKey(d)
	assert.Equal(t, first, SVGKey(d))
	assert.Contains(t, first, "design_1:")

	d.UpdatedAt = at.Add(time.Millisecond)
	assert.NotEqual(t, first, SVGKey(d))
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(&config.Config{RedisURL: "://not-a-url"}, nil)
	assert.Error(t, err)
}
