package middleware

import (
	"net/http"
	"sync"
	"time"

	"bikefix/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ipLimiters tracks one token bucket per client IP.
var ipLimiters = struct {
	sync.Mutex
	m map[string]*rate.Limiter
}{m: make(map[string]*rate.Limiter)}

func limiterFor(ip string) *rate.Limiter {
	ipLimiters.Lock()
	defer ipLimiters.Unlock()

	if l, ok := ipLimiters.m[ip]; ok {
		return l
	}
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 100
	}
	l := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin)
	ipLimiters.m[ip] = l
	return l
}

// RateLimitMiddleware rejects requests over the configured per-IP budget with 429.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !limiterFor(ip).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
			return
		}
		c.Next()
	}
}
