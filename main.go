package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-catalog-backend/api"
	"github.com/rpupo63/blog-catalog-backend/database"
	"github.com/rpupo63/blog-catalog-backend/services"
)

func main() {
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	mongoURI := getEnv("MONGODB_URI", os.Getenv("MONGO_URI"))
	if mongoURI == "" {
		log.Fatal().Msg("MONGODB_URI or MONGO_URI environment variable is not defined")
	}
	dbName := getEnv("MONGODB_DATABASE", "blog-catalog")

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	currentDB, err := database.Connect(connectCtx, mongoURI, dbName)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	log.Info().Str("database", dbName).Msg("MongoDB connected")

	if err := currentDB.EnsureIndexes(connectCtx); err != nil {
		log.Fatal().Err(err).Msg("Error creating database indexes")
	}

	// Object storage is optional in development; uploads report the
	// missing configuration and deletes skip image cleanup.
	storage, err := services.NewImageStorage(services.ImageStorageConfig{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Bucket:    os.Getenv("S3_BUCKET"),
		PublicURL: os.Getenv("S3_PUBLIC_URL"),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Running without object storage")
		storage = nil
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)

	disconnectCtx, cancelDisconnect := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelDisconnect()
	if err := currentDB.Disconnect(disconnectCtx); err != nil {
		log.Error().Err(err).Msg("Error closing database connection")
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
