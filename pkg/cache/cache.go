// Package cache holds the process-local default-campaign memo.
package cache

import (
	"sync"

	"jobtrack/domain/entities"
)

// DefaultCampaigns memoizes each user's resolved default campaign by user id.
//
// Entries live for the lifetime of the process; there is no eviction and no
// expiry. The only invalidation is explicit, when a user creates a new
// default campaign. This is acceptable because entries are small, keyed by
// active users only, and a stale miss merely costs a re-fetch.
type DefaultCampaigns struct {
	mu        sync.RWMutex
	campaigns map[string]entities.Campaign
}

// NewDefaultCampaigns creates an empty cache.
func NewDefaultCampaigns() *DefaultCampaigns {
	return &DefaultCampaigns{
		campaigns: make(map[string]entities.Campaign),
	}
}

// Get returns the cached default campaign for the user, if any.
func (c *DefaultCampaigns) Get(userID string) (entities.Campaign, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	campaign, ok := c.campaigns[userID]
	return campaign, ok
}

// Set stores the user's resolved default campaign.
func (c *DefaultCampaigns) Set(userID string, campaign entities.Campaign) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.campaigns[userID] = campaign
}

// Invalidate drops the cached entry for the user.
func (c *DefaultCampaigns) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.campaigns, userID)
}
