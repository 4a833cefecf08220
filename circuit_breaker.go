package dustdb

import (
	"time"

	"github.com/dustlabs/dustdb/protocol"
	"github.com/sony/gobreaker/v2"
)

// CircuitBreaker guards round trips to one server.
type CircuitBreaker = gobreaker.CircuitBreaker[*protocol.Response]

// NewCircuitBreakerConfig returns a factory creating one circuit breaker per
// server address, for use as ClientConfig.NewCircuitBreaker. A server trips
// open after at least 3 requests with a 60% failure ratio within interval,
// and admits maxRequests probes after timeout.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(string) *CircuitBreaker {
	return func(serverAddr string) *CircuitBreaker {
		settings := gobreaker.Settings{
			Name:        serverAddr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}
		return gobreaker.NewCircuitBreaker[*protocol.Response](settings)
	}
}
