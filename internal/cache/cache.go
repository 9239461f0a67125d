package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache holds short-lived per-process state such as login limiters.
// Values are stored by reference, so callers may mutate what they Get.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	// Set stores value; an expiration of 0 uses the cache default.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	// Add stores value only when key is absent and reports whether it did.
	Add(ctx context.Context, key string, value interface{}, expiration time.Duration) bool
	Flush(ctx context.Context)
}

const (
	PrefixLoginLimiter = "login_limiter:v1"
)

// GenerateKey builds "prefix:param1:param2..."
func GenerateKey(prefix string, params ...interface{}) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(prefix, ":"))
	for _, p := range params {
		fmt.Fprintf(&b, ":%v", p)
	}
	return b.String()
}
