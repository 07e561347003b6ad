package middleware

import (
	"testing"
	"time"
)

func newTestLimiter(requestsPerMinute, burst int) (*RateLimiter, *time.Time) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rl := &RateLimiter{
		buckets:           make(map[string]*tokenBucket),
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		now:               func() time.Time { return now },
	}
	return rl, &now
}

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl, _ := newTestLimiter(60, 5)

	for i := 0; i < 5; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("request beyond burst was allowed")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl, now := newTestLimiter(60, 2)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.1")
	if rl.Allow("10.0.0.1") {
		t.Fatal("bucket should be empty")
	}

	// 60/min refills one token per second.
	*now = now.Add(time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("token should have refilled after one second")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("only one token should have refilled")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl, _ := newTestLimiter(60, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first client denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("first client should be exhausted")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("second client should have its own bucket")
	}
}

func TestRateLimiterCapsAtCapacity(t *testing.T) {
	rl, now := newTestLimiter(60, 3)

	rl.Allow("10.0.0.1")
	// A long idle period must not accumulate more than the burst capacity.
	*now = now.Add(time.Hour)
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d within capacity was denied", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("bucket exceeded its capacity")
	}
}
