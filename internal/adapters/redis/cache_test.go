package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotelbook/internal/adapters/redis"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var miss map[string]any
	ok, err := c.Get(ctx, "hotels:all", &miss)
	if err != nil || ok {
		t.Fatalf("expected miss: ok=%v err=%v", ok, err)
	}

	in := map[string]any{"name": "Grand Palace"}
	if err := c.Set(ctx, "hotels:all", in, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out map[string]any
	ok, err = c.Get(ctx, "hotels:all", &out)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if out["name"] != "Grand Palace" {
		t.Fatalf("unexpected value: %+v", out)
	}

	if err := c.Del(ctx, "hotels:all"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if ok, _ := c.Get(ctx, "hotels:all", &out); ok {
		t.Fatalf("key survived Del")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "hotel:1", "v", 10); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var out string
	if ok, _ := c.Get(ctx, "hotel:1", &out); ok {
		t.Fatalf("expected expiry after TTL")
	}
}
