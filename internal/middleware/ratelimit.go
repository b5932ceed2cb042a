package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/promptstudio/promptstudio-go/internal/enhance"
	"github.com/promptstudio/promptstudio-go/internal/metrics"
)

// bucketIdle is how long a client may stay silent before its bucket is
// forgotten.
const bucketIdle = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientBuckets hands out one token bucket per client address. Idle buckets
// are swept while handling lookups, so nothing runs in the background.
type clientBuckets struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	nextSweep time.Time
}

func newClientBuckets(rps float64, burst int) *clientBuckets {
	return &clientBuckets{
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// take spends one token for addr. When none is left it reports how long the
// client should wait before retrying.
func (c *clientBuckets) take(addr string) (bool, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.After(c.nextSweep) {
		for a, b := range c.buckets {
			if now.Sub(b.lastSeen) > bucketIdle {
				delete(c.buckets, a)
			}
		}
		c.nextSweep = now.Add(bucketIdle)
	}

	b, ok := c.buckets[addr]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.buckets[addr] = b
	}
	b.lastSeen = now

	res := b.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, bucketIdle
	}
	if wait := res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return false, wait
	}
	return true, 0
}

func (c *clientBuckets) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buckets)
}

// RateLimit allows each client address rps requests per second with bursts
// of up to burst. Rejected requests get 429 with a Retry-After header.
// Preflight requests are never counted.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	return rateLimit(newClientBuckets(rps, burst))
}

func rateLimit(buckets *clientBuckets) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			addr, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				addr = r.RemoteAddr
			}

			if ok, wait := buckets.take(addr); !ok {
				metrics.RecordRateLimited(routePattern(r))
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeJSONError(w, http.StatusTooManyRequests, enhance.MsgThrottled)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
