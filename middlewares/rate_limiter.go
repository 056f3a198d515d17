package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiter por IP para o endpoint de login
type ipLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

var loginLimiter = ipLimiter{limiters: make(map[string]*rate.Limiter)}

func (il *ipLimiter) get(ip string) *rate.Limiter {
	il.mu.Lock()
	defer il.mu.Unlock()

	limiter, exists := il.limiters[ip]
	if !exists {
		// 5 tentativas por minuto por IP
		limiter = rate.NewLimiter(rate.Every(time.Minute/5), 5)
		il.limiters[ip] = limiter
	}
	return limiter
}

// NewStrictRateLimiter limita tentativas de login por IP.
func NewStrictRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !loginLimiter.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  false,
				"message": "too many attempts, try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
