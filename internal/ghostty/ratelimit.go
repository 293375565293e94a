package ghostty

import (
	"sync"
	"time"
)

// tokenBucket implements the token bucket algorithm for rate limiting
// reload requests.
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	lastUpdate time.Time
	ratePerSec float64
	maxTokens  float64
}

func newTokenBucket(ratePerSec float64, burst int) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(burst),
		lastUpdate: time.Now(),
		ratePerSec: ratePerSec,
		maxTokens:  float64(burst),
	}
}

// allow checks if a request is allowed and consumes a token if so.
func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	// Refill tokens based on elapsed time
	now := time.Now()
	elapsed := now.Sub(tb.lastUpdate).Seconds()
	tb.tokens += elapsed * tb.ratePerSec
	if tb.tokens > tb.maxTokens {
		tb.tokens = tb.maxTokens
	}
	tb.lastUpdate = now

	if tb.tokens >= 1.0 {
		tb.tokens--
		return true
	}

	return false
}
