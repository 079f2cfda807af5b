package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	return &SecurityValidator{
		config:      config,
		rateLimiter: newRateLimiter(config.RateLimitPerMin),
	}
}

// ValidateLinearSignature verifies the Linear-Signature header (hex HMAC-SHA256 of the body).
func (v *SecurityValidator) ValidateLinearSignature(payload []byte, signature string) error {
	if v.config.LinearSecret == "" {
		return fmt.Errorf("linear webhook secret not configured")
	}
	if signature == "" {
		return fmt.Errorf("missing signature")
	}

	expectedSig, err := hex.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("invalid signature hex encoding: %w", err)
	}

	if !hmac.Equal(expectedSig, sign(v.config.LinearSecret, payload)) {
		return fmt.Errorf("signature verification failed")
	}
	return nil
}

// ValidateTodoistSignature verifies the X-Todoist-Hmac-SHA256 header (base64 HMAC-SHA256 of the body).
func (v *SecurityValidator) ValidateTodoistSignature(payload []byte, signature string) error {
	if v.config.TodoistSecret == "" {
		return fmt.Errorf("todoist client secret not configured")
	}
	if signature == "" {
		return fmt.Errorf("missing signature")
	}

	expectedSig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("invalid signature base64 encoding: %w", err)
	}

	if !hmac.Equal(expectedSig, sign(v.config.TodoistSecret, payload)) {
		return fmt.Errorf("signature verification failed")
	}
	return nil
}

func sign(secret string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return mac.Sum(nil)
}

// ValidateIPAddress checks if the client IP is whitelisted.
// ip must come from a source that only honours forwarding headers set by trusted proxies.
func (v *SecurityValidator) ValidateIPAddress(ip string) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil // No IP restriction
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return fmt.Errorf("invalid client IP %q", ip)
	}

	for _, allowedIP := range v.config.AllowedIPs {
		if strings.Contains(allowedIP, "/") {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if ipNet.Contains(parsed) {
				return nil
			}
			continue
		}

		if allowed := net.ParseIP(allowedIP); allowed != nil && allowed.Equal(parsed) {
			return nil
		}
	}

	return fmt.Errorf("IP %s not whitelisted", ip)
}

// CheckRateLimit enforces rate limiting
func (v *SecurityValidator) CheckRateLimit(source string) error {
	return v.rateLimiter.Allow(source)
}

// rateLimiter keeps one token bucket per source, evicted after 5 minutes idle.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// newRateLimiter allows requestsPerMin per source; zero or less disables the limit.
func newRateLimiter(requestsPerMin int) *rateLimiter {
	limit := rate.Limit(float64(requestsPerMin) / 60.0)
	if requestsPerMin <= 0 {
		limit = rate.Inf
	}

	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			100,
			nil,
			time.Minute*5,
		),
		rate:  limit,
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s", key)
	}
	return nil
}
