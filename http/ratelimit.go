package http

import (
	"context"
	"net"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// DomainLimiter spaces out requests to each host with a token bucket per
// host. Hosts are compared case-insensitively and without port.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		buckets: map[string]*rate.Limiter{},
		limit:   rate.Limit(rps),
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	key := strings.ToLower(host)
	if h, _, err := net.SplitHostPort(key); err == nil {
		key = h
	}

	d.mu.Lock()
	bucket, ok := d.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(d.limit, 1)
		d.buckets[key] = bucket
	}
	d.mu.Unlock()

	return bucket.Wait(ctx)
}
