package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("allows up to the limit", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			allowed, err := rl.Allow(context.Background(), "1.2.3.4")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !allowed {
				t.Fatalf("request %d should be allowed", i+1)
			}
		}

		allowed, err := rl.Allow(context.Background(), "1.2.3.4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if allowed {
			t.Error("fourth request should be denied")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		if allowed, _ := rl.Allow(context.Background(), "1.2.3.4"); !allowed {
			t.Fatal("first key should be allowed")
		}
		if allowed, _ := rl.Allow(context.Background(), "5.6.7.8"); !allowed {
			t.Error("second key should be unaffected by the first")
		}
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)

		if allowed, _ := rl.Allow(context.Background(), "1.2.3.4"); !allowed {
			t.Fatal("first request should be allowed")
		}
		if allowed, _ := rl.Allow(context.Background(), "1.2.3.4"); allowed {
			t.Fatal("second request in window should be denied")
		}

		time.Sleep(20 * time.Millisecond)

		if allowed, _ := rl.Allow(context.Background(), "1.2.3.4"); !allowed {
			t.Error("request after window expiry should be allowed")
		}
	})

	t.Run("reset clears all state", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		rl.Allow(context.Background(), "1.2.3.4")
		rl.Reset()

		if allowed, _ := rl.Allow(context.Background(), "1.2.3.4"); !allowed {
			t.Error("request after reset should be allowed")
		}
	})
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(5, 10*time.Millisecond)

	rl.Allow(context.Background(), "expired")
	time.Sleep(20 * time.Millisecond)
	rl.Allow(context.Background(), "fresh")

	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, exists := rl.entries["expired"]; exists {
		t.Error("expired entry should have been removed")
	}
	if _, exists := rl.entries["fresh"]; !exists {
		t.Error("fresh entry should have been kept")
	}
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mini.Close()

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	defer client.Close()

	t.Run("allows up to the limit", func(t *testing.T) {
		rl := NewRedisRateLimiter(client, 2, time.Minute)

		for i := 0; i < 2; i++ {
			allowed, err := rl.Allow(context.Background(), "1.2.3.4")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !allowed {
				t.Fatalf("request %d should be allowed", i+1)
			}
		}

		allowed, err := rl.Allow(context.Background(), "1.2.3.4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if allowed {
			t.Error("third request should be denied")
		}
	})

	t.Run("counter expires with the window", func(t *testing.T) {
		rl := NewRedisRateLimiter(client, 1, time.Minute)

		if allowed, _ := rl.Allow(context.Background(), "9.9.9.9"); !allowed {
			t.Fatal("first request should be allowed")
		}
		if allowed, _ := rl.Allow(context.Background(), "9.9.9.9"); allowed {
			t.Fatal("second request in window should be denied")
		}

		mini.FastForward(2 * time.Minute)

		if allowed, _ := rl.Allow(context.Background(), "9.9.9.9"); !allowed {
			t.Error("request after window expiry should be allowed")
		}
	})

	t.Run("backend failure surfaces as an error", func(t *testing.T) {
		down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		defer down.Close()
		rl := NewRedisRateLimiter(down, 1, time.Minute)

		if _, err := rl.Allow(context.Background(), "1.2.3.4"); err == nil {
			t.Error("expected an error when the backend is unreachable")
		}
	})
}
