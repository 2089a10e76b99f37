package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/common"
)

const principalKey = "principal"

// MsgTooManyRequests is returned when a client exceeds its rate limit.
const MsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."

// MsgUploadTooLarge is returned when a request body exceeds server.max_upload_mb.
const MsgUploadTooLarge = "업로드한 사진의 용량이 너무 큽니다."

// BodyLimitMiddleware caps the request body at limit bytes. Requests that
// declare a larger Content-Length are rejected before the body is read.
func BodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": MsgUploadTooLarge})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// CORSMiddleware answers preflight requests and sets CORS headers for allowed origins.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin matches exact origins and prefixes ending in *.
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		if prefix, ok := strings.CutSuffix(allowed, "*"); ok {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// LoggerMiddleware writes one structured log line per request.
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP())
	}
}

// RecoveryMiddleware turns panics into 500 responses.
func RecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": common.MsgGenerationFailed})
	})
}

// Authenticator validates bearer tokens.
type Authenticator interface {
	Authenticate(token string) (account.Principal, error)
}

// AuthMiddleware requires a valid bearer token and stores the caller in the context.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": account.MsgLoginRequired})
			return
		}

		who, err := auth.Authenticate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": account.MsgLoginRequired})
			return
		}

		c.Set(principalKey, who)
		c.Next()
	}
}

func principal(c *gin.Context) account.Principal {
	if v, ok := c.Get(principalKey); ok {
		if who, ok := v.(account.Principal); ok {
			return who
		}
	}
	return account.Principal{}
}

// IPLimiter keeps one token bucket per client address.
type IPLimiter struct {
	visitors  map[string]*visitor
	now       func() time.Time
	lastSweep time.Time
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const visitorIdle = 10 * time.Minute

// NewIPLimiter allows each address limit requests per second with the given burst.
func NewIPLimiter(limit rate.Limit, burst int) *IPLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
		limit:    limit,
		burst:    burst,
	}
}

// Allow reports whether ip may make a request now.
func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > time.Minute {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorIdle {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimitMiddleware rejects clients that exceed their per-address budget.
func RateLimitMiddleware(limiter *IPLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": MsgTooManyRequests})
			return
		}
		c.Next()
	}
}
