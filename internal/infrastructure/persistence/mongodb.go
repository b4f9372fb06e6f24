package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoConnectTimeout bounds connection setup and the initial ping.
const mongoConnectTimeout = 10 * time.Second

// ConnectConversationStore connects to MongoDB and returns the client together
// with the database handle the conversation repository reads and writes.
func ConnectConversationStore(ctx context.Context, uri, dbName, username, password string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, conversationStoreOptions(uri, username, password))
	if err != nil {
		return nil, nil, fmt.Errorf("connect conversation store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("ping conversation store: %w", err)
	}

	return client, client.Database(dbName), nil
}

// conversationStoreOptions builds the client options for the conversation
// store. Credentials are optional; local and CI deployments run without auth.
func conversationStoreOptions(uri, username, password string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName("ecomovex-service").
		SetConnectTimeout(mongoConnectTimeout).
		SetServerSelectionTimeout(mongoConnectTimeout)

	if username != "" && password != "" {
		opts.SetAuth(options.Credential{
			Username: username,
			Password: password,
		})
	}
	return opts
}
