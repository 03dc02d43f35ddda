package echo

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const actorKey = "actor_id"

type TokenParser interface {
	Parse(token string) (uint, error)
}

// BearerAuth resolves the Authorization header into the acting user id.
func BearerAuth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, messageBody{Message: msgUnauthenticated})
			}

			userID, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, messageBody{Message: msgUnauthenticated})
			}

			c.Set(actorKey, userID)
			return next(c)
		}
	}
}

func actorID(c echo.Context) uint {
	id, _ := c.Get(actorKey).(uint)
	return id
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-client token bucket keyed by remote address.
func RateLimiter(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	var (
		mu        sync.Mutex
		clients   = make(map[string]*clientLimiter)
		lastPrune = time.Now()
	)

	getLimiter := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(lastPrune) > 5*time.Minute {
			for key, cl := range clients {
				if now.Sub(cl.lastSeen) > 10*time.Minute {
					delete(clients, key)
				}
			}
			lastPrune = now
		}

		cl, ok := clients[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		return cl.limiter
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := getLimiter(clientIP(c.Request()))

			reservation := limiter.Reserve()
			if !reservation.OK() {
				return c.JSON(http.StatusTooManyRequests, messageBody{Message: "Too Many Attempts."})
			}
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
				return c.JSON(http.StatusTooManyRequests, messageBody{Message: "Too Many Attempts."})
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			return next(c)
		}
	}
}

// clientIP uses RemoteAddr only; X-Forwarded-For is ignored.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
