package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client is a key-value item store on Redis. Each item is a JSON string
// under "<table>:<key>".
type Client struct {
	rdb *goredis.Client
}

// NewClient connects to Redis, retrying until it answers a ping or
// attempts run out.
func NewClient(addr string, attempts int) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	for i := 1; i <= attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			log.Println("[redis] connected to Redis")
			return &Client{rdb: rdb}, nil
		}
		log.Printf("[redis] waiting for Redis... (%d/%d)", i, attempts)
		if i < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	rdb.Close()
	return nil, fmt.Errorf("redis: failed to connect after %d attempts", attempts)
}

// ItemKey is the Redis key an item is stored under.
func ItemKey(table, key string) string { return table + ":" + key }

// PutItem stores item as JSON, overwriting whatever was there. No TTL.
func (c *Client) PutItem(ctx context.Context, table, key string, item any) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("redis: encode %s item: %w", table, err)
	}
	if err := c.rdb.Set(ctx, ItemKey(table, key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis: put %s/%s: %w", table, key, err)
	}
	return nil
}

// Close tears down the Redis connection.
func (c *Client) Close() error { return c.rdb.Close() }
