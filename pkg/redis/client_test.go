package redis

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(mr.Addr(), 1)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestPutItemOverwrites(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	if err := c.PutItem(ctx, "RideRequests", "r1", map[string]string{"status": "requested"}); err != nil {
		t.Fatal(err)
	}
	if err := c.PutItem(ctx, "RideRequests", "r1", map[string]string{"status": "again"}); err != nil {
		t.Fatal(err)
	}

	raw, err := mr.Get("RideRequests:r1")
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatal(err)
	}
	if got["status"] != "again" {
		t.Fatalf("status = %q, want again", got["status"])
	}
	if ttl := mr.TTL("RideRequests:r1"); ttl != 0 {
		t.Fatalf("ttl = %v, want none", ttl)
	}
}

func TestPutItemUnencodable(t *testing.T) {
	c, _ := newTestClient(t)
	err := c.PutItem(context.Background(), "RideRequests", "r1", make(chan int))
	if err == nil || !strings.Contains(err.Error(), "encode") {
		t.Fatalf("err = %v, want encode error", err)
	}
}

func TestPutItemServerDown(t *testing.T) {
	c, mr := newTestClient(t)
	mr.Close()
	if err := c.PutItem(context.Background(), "RideRequests", "r1", "x"); err == nil {
		t.Fatal("expected error with server closed")
	}
}

func TestNewClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	if _, err := NewClient(addr, 1); err == nil {
		t.Fatal("expected connect error")
	}
}
