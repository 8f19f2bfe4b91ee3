package cache

import (
	"testing"

	"jobtrack/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCampaigns(t *testing.T) {
	c := NewDefaultCampaigns()

	_, ok := c.Get("user-1")
	assert.False(t, ok)

	c.Set("user-1", entities.Campaign{ID: "camp-1"})
	got, ok := c.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, "camp-1", got.ID)

	c.Invalidate("user-1")
	_, ok = c.Get("user-1")
	assert.False(t, ok)
}

func TestInvalidateMissingUserIsANoOp(t *testing.T) {
	c := NewDefaultCampaigns()
	c.Invalidate("nobody")

	_, ok := c.Get("nobody")
	assert.False(t, ok)
}
