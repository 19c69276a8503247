package client

import (
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

const defaultBreakerThreshold = 5

// breakers holds one circuit breaker per registry host.
type breakers struct {
	threshold int64
	byHost    map[string]*circuit.Breaker
	mu        sync.RWMutex
}

func newBreakers(threshold int64) *breakers {
	return &breakers{
		threshold: threshold,
		byHost:    make(map[string]*circuit.Breaker),
	}
}

// get returns or creates a circuit breaker for the given host.
func (b *breakers) get(host string) *circuit.Breaker {
	b.mu.RLock()
	breaker, exists := b.byHost[host]
	b.mu.RUnlock()

	if exists {
		return breaker
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists := b.byHost[host]; exists {
		return breaker
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ConsecutiveTripFunc(b.threshold),
	})
	b.byHost[host] = breaker
	return breaker
}

// states returns "open" or "closed" per host.
func (b *breakers) states() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	states := make(map[string]string, len(b.byHost))
	for host, breaker := range b.byHost {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

// hostOf extracts the host used for breaker grouping.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}
