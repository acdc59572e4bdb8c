package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// rateLimiter is a fixed one-minute window counter per client address.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow

	perMinute int
	stop      chan struct{}
	stopOnce  sync.Once
}

type clientWindow struct {
	last  time.Time
	count int
}

func newRateLimiter(perMinute int) *rateLimiter {
	rl := &rateLimiter{
		clients:   make(map[string]*clientWindow),
		perMinute: perMinute,
		stop:      make(chan struct{}),
	}
	go rl.cleanupLoop(5 * time.Minute)
	return rl
}

func (rl *rateLimiter) allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[addr]
	if !ok || now.Sub(c.last) > time.Minute {
		rl.clients[addr] = &clientWindow{last: now, count: 1}
		return true
	}
	c.count++
	c.last = now
	return c.count <= rl.perMinute
}

// cleanupLoop drops clients idle for 10 minutes so the map stays bounded.
func (rl *rateLimiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-10 * time.Minute)
			rl.mu.Lock()
			for addr, c := range rl.clients {
				if c.last.Before(cutoff) {
					delete(rl.clients, addr)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

func (rl *rateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := r.RemoteAddr
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
		if !rl.allow(addr) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
