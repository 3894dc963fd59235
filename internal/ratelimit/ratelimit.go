package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	Allow(chatID int64) bool
}

// InMemoryLimiter is an implementation of Limiter stored in memory
type InMemoryLimiter struct {
	chats map[int64]*rate.Limiter
	mu    sync.Mutex
	r     rate.Limit
	b     int
}

// NewInMemoryLimiter creates a new rate limiter.
// Example: NewInMemoryLimiter(1, 5*time.Second, 3) -> allows 1 command every
// 5 seconds with a burst of 3.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) Limiter {
	return &InMemoryLimiter{
		chats: make(map[int64]*rate.Limiter),
		r:     rate.Every(per / time.Duration(requests)),
		b:     burst,
	}
}

// Allow checks if a chat is allowed to perform an action
func (l *InMemoryLimiter) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.chats[chatID]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.chats[chatID] = limiter
	}

	return limiter.Allow()
}
