package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skillwave-academy/content-service/api"
	"github.com/skillwave-academy/content-service/auth"
	"github.com/skillwave-academy/content-service/config"
	"github.com/skillwave-academy/content-service/indexes"
	"github.com/skillwave-academy/content-service/kv"
	"github.com/skillwave-academy/content-service/storage"
)

func main() {
	fmt.Println("Initializing content service...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	dsn := config.GetString(c, "DATABASE_URL", "")
	if dsn == "" {
		fmt.Println("DATABASE_URL is required. Exiting...")
		os.Exit(1)
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	store, err := kv.NewGormStore(db)
	if err != nil {
		fmt.Printf("Error initializing KV store: %v\n", err)
		os.Exit(1)
	}

	bucketPrefix := config.GetString(c, "BUCKET_PREFIX", "skillwave")
	gateway, err := storage.NewS3Gateway(context.Background(), storage.S3Config{
		Region:          config.GetString(c, "AWS_REGION", "us-east-1"),
		AccessKeyID:     config.GetString(c, "AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: config.GetString(c, "AWS_SECRET_ACCESS_KEY", ""),
		Endpoint:        config.GetString(c, "S3_ENDPOINT", ""),
		UsePathStyle:    config.GetBool(c, "S3_USE_PATH_STYLE", false),
	}, storage.DeclareBuckets(bucketPrefix))
	if err != nil {
		fmt.Printf("Error initializing object storage: %v\n", err)
		os.Exit(1)
	}

	// best-effort bucket bootstrap; failures are logged inside
	gateway.EnsureBuckets(context.Background())

	jwtSecret := config.GetString(c, "AUTH_JWT_SECRET", "")
	if jwtSecret == "" {
		fmt.Println("AUTH_JWT_SECRET is required. Exiting...")
		os.Exit(1)
	}

	deps := api.Dependencies{
		Store:    store,
		Indexes:  indexes.NewManager(store),
		Gateway:  gateway,
		Buckets:  storage.BucketsFor(bucketPrefix),
		Verifier: auth.NewJWTVerifier(jwtSecret),
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(deps)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	zlog.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
