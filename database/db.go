package database

import (
	"context"
	"fmt"
	"time"

	"rideconnect/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// MongoClient is the process-wide client set by InitDB.
var MongoClient *mongo.Client

// Connect dials uri and waits for the primary to answer.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("rideconnect").
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// InitDB connects to the configured database and stores the client globally.
func InitDB() error {
	client, err := Connect(context.Background(), config.AppConfig.DatabaseURL)
	if err != nil {
		return err
	}
	MongoClient = client
	return nil
}

// Database returns the application database on the global client.
func Database() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Disconnect closes the global client.
func Disconnect(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
