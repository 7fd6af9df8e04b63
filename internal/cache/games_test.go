package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamemate/gamemate/internal/models"
)

// A nil cache must be a safe no-op so callers never branch on whether Redis
// is configured.
func TestNilCacheIsSafe(t *testing.T) {
	var c *GameCache
	ctx := context.Background()

	games, ok := c.GetList(ctx)
	assert.False(t, ok)
	assert.Nil(t, games)

	c.SetList(ctx, []models.Game{{Name: "x"}})
	c.Invalidate(ctx)
}

func TestConnectWithoutAddrDisablesCache(t *testing.T) {
	c, err := Connect(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, c)
}
