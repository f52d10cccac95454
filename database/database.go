package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Database struct {
	client       *mongo.Client
	blogPostRepo *BlogPostRepo
}

// Connect opens a MongoDB client, verifies the connection with a ping,
// and returns a Database struct with each repository bound to the named
// database.
func Connect(ctx context.Context, uri, dbName string) (Database, error) {
	if uri == "" {
		return Database{}, fmt.Errorf("mongodb connection uri is empty")
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second).
		SetSocketTimeout(45 * time.Second).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return Database{}, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return Database{}, fmt.Errorf("pinging mongodb: %w", err)
	}

	return New(client.Database(dbName), client), nil
}

// New initializes a new Database struct with each repository using a shared Mongo database handle
func New(db *mongo.Database, client *mongo.Client) Database {
	return Database{
		client:       client,
		blogPostRepo: NewBlogPostRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

// EnsureIndexes creates the indexes every repository relies on. Safe to
// call on every startup; Mongo treats existing indexes as a no-op.
func (d Database) EnsureIndexes(ctx context.Context) error {
	return d.blogPostRepo.EnsureIndexes(ctx)
}

// Disconnect closes the underlying client. Used during graceful shutdown.
func (d Database) Disconnect(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	return d.client.Disconnect(ctx)
}
