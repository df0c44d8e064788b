package http

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ticketwiz/ticketwiz/internal/config"
	"github.com/ticketwiz/ticketwiz/internal/persistence"
	apperrors "github.com/ticketwiz/ticketwiz/pkg/util/errorutil"
)

const localLimiterCap = 10000

// PublicRateLimiter bounds the unauthenticated intake path per client IP.
// The shared counter lives in Redis (fixed one-minute window); when Redis is
// unreachable the limiter degrades to per-IP in-process token buckets
// instead of failing open.
type PublicRateLimiter struct {
	redis  *persistence.Redis
	perMin int
	burst  int
	logger *zap.Logger

	mu    sync.Mutex
	local map[string]*localLimiter
}

type localLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewPublicRateLimiter builds the limiter.
func NewPublicRateLimiter(redisClient *persistence.Redis, cfg config.RateLimitConfig, logger *zap.Logger) *PublicRateLimiter {
	perMin := cfg.PublicPerMinute
	if perMin <= 0 {
		perMin = 10
	}
	burst := cfg.PublicBurst
	if burst <= 0 {
		burst = perMin
	}
	return &PublicRateLimiter{
		redis:  redisClient,
		perMin: perMin,
		burst:  burst,
		logger: logger,
		local:  make(map[string]*localLimiter),
	}
}

// Handle rejects callers above the limit with 429 and a Retry-After hint.
func (l *PublicRateLimiter) Handle(c *fiber.Ctx) error {
	ip := c.IP()

	allowed, err := l.allowRedis(c.UserContext(), ip)
	if err != nil {
		l.logger.Warn("rate limiter falling back to in-process", zap.Error(err))
		allowed = l.allowLocal(ip)
	}
	if !allowed {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(60))
		return apperrors.NewTooManyRequests("too many requests, try again later")
	}
	return c.Next()
}

func (l *PublicRateLimiter) allowRedis(ctx context.Context, ip string) (bool, error) {
	if l.redis == nil || l.redis.Client == nil {
		return false, fmt.Errorf("redis not configured")
	}
	key := "ratelimit:public:" + ip

	// INCR and EXPIRE travel in one transaction. ExpireNX arms the window
	// only when the key carries no TTL, so a counter that lost its expiry
	// gets re-armed instead of throttling the IP forever.
	pipe := l.redis.Client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(l.perMin), nil
}

func (l *PublicRateLimiter) allowLocal(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.local[ip]
	if !ok {
		if len(l.local) >= localLimiterCap {
			l.prune()
		}
		entry = &localLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(l.perMin)/60.0), l.burst),
		}
		l.local[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// prune drops entries idle for over ten minutes. Caller holds the lock.
func (l *PublicRateLimiter) prune() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, entry := range l.local {
		if entry.lastSeen.Before(cutoff) {
			delete(l.local, ip)
		}
	}
}
