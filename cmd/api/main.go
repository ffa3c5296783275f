package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-cms-api/internal/config"
	"github.com/go-cms-api/internal/infrastructure/dynamo"
	"github.com/go-cms-api/internal/infrastructure/google"
	jwtinfra "github.com/go-cms-api/internal/infrastructure/jwt"
	"github.com/go-cms-api/internal/infrastructure/notify"
	redisinfra "github.com/go-cms-api/internal/infrastructure/redis"
	s3infra "github.com/go-cms-api/internal/infrastructure/s3"
	"github.com/go-cms-api/internal/infrastructure/smtp"
	"github.com/go-cms-api/internal/infrastructure/sns"
	transporthttp "github.com/go-cms-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Redis backs one-time codes and their resend markers.
	redisClient, err := redisinfra.NewClient(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	jwtProvider := jwtinfra.NewProvider(cfg)

	// S3 store.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	var googleOAuth *google.OAuth
	if cfg.GoogleClientID != "" {
		googleOAuth = google.NewOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	} else {
		log.Println("WARN: Google OAuth not configured")
	}

	deps := &transporthttp.Deps{
		UserRepo:       dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		RoleRepo:       dynamo.NewRoleRepo(dynamoClient, cfg.DynamoTables.Roles),
		PermissionRepo: dynamo.NewPermissionRepo(dynamoClient, cfg.DynamoTables.Permissions),
		PageRepo:       dynamo.NewPageRepo(dynamoClient, cfg.DynamoTables.Pages),
		SectionRepo:    dynamo.NewSectionRepo(dynamoClient, cfg.DynamoTables.Sections),
		ContentRepo:    dynamo.NewContentRepo(dynamoClient, cfg.DynamoTables.Contents),
		LanguageRepo:   dynamo.NewLanguageRepo(dynamoClient, cfg.DynamoTables.Languages),
		FolderRepo:     dynamo.NewFolderRepo(dynamoClient, cfg.DynamoTables.Folders),
		FileRepo:       dynamo.NewFileRepo(dynamoClient, cfg.DynamoTables.Files),
		PreferenceRepo: dynamo.NewPreferenceRepo(dynamoClient, cfg.DynamoTables.UserPreferences),
		OtpStore:       redisinfra.NewOtpStore(redisClient),
		S3Store:        s3Store,
		Notifier:       notify.New(mailer, smsSender),
		JWTProvider:    jwtProvider,
		GoogleOAuth:    googleOAuth,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	_ = redisClient.Close()
	log.Println("Server stopped")
}
