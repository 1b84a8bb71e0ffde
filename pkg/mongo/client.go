package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	gomongo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client is a key-value item store on MongoDB: one collection per table,
// items keyed by _id.
type Client struct {
	client *gomongo.Client
	db     *gomongo.Database
}

// Connect opens a client against uri and pings it.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	ctx2, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := gomongo.Connect(ctx2, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx2, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	log.Println("[mongo] connected to MongoDB")
	return &Client{client: client, db: client.Database(dbName)}, nil
}

// PutItem replaces the document with _id == key, inserting it if absent.
func (c *Client) PutItem(ctx context.Context, table, key string, item any) error {
	_, err := c.db.Collection(table).ReplaceOne(ctx,
		bson.M{"_id": key}, item, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo: put %s/%s: %w", table, key, err)
	}
	return nil
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error { return c.client.Disconnect(ctx) }
