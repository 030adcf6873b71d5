package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== RateLimiter 冷却限流器 ====================

// RateLimiter 按 key 的冷却限流：同一 key 在 interval 内只放行一次
type RateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewRateLimiter 创建限流器
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时记录本次时间
func (r *RateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key 的限流
func (r *RateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Gin 中间件 ====================

// Throttle 按 scope + 客户端 IP 限流，interval 为 0 时不限流
//
//	auth.POST("/login", middleware.Throttle(limiter, "login", cfg.LoginThrottle), ctl.Login)
func Throttle(limiter *RateLimiter, scope string, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if interval <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())
		result := limiter.Check(key, interval)
		if !result.Allowed {
			wait := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(wait))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": fmt.Sprintf("Request was throttled. Expected available in %d seconds.", wait),
			})
			return
		}

		c.Next()
	}
}
