package helper

import (
	"sync"
	"time"
)

// TokenCache holds one bearer token and refreshes it shortly before expiry.
type TokenCache struct {
	mu     sync.Mutex
	value  string
	expiry time.Time
	Now    func() time.Time
	// Skew is subtracted from the provider's lifetime.
	Skew time.Duration
}

type TokenFetcher func() (token string, ttl time.Duration, err error)

func (c *TokenCache) Get(fetch TokenFetcher) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if c.value != "" && now().Before(c.expiry) {
		return c.value, nil
	}

	token, ttl, err := fetch()
	if err != nil {
		return "", err
	}
	skew := c.Skew
	if skew == 0 {
		skew = time.Minute
	}
	if ttl <= skew {
		// Too short to cache; use it once.
		c.value = ""
		return token, nil
	}
	c.value = token
	c.expiry = now().Add(ttl - skew)
	return token, nil
}

// Reset drops the cached token, e.g. after the provider rejected it.
func (c *TokenCache) Reset() {
	c.mu.Lock()
	c.value = ""
	c.mu.Unlock()
}
