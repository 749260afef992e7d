package ratelimiter

import "time"

// Limiter decides whether the caller identified by key may proceed. When it
// may not, the duration says how long until it may retry.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
