package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/tutorial-blog-backend/api"
	"github.com/rpupo63/tutorial-blog-backend/config"
	"github.com/rpupo63/tutorial-blog-backend/database"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	currentDB := database.New(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := currentDB.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Error migrating database")
		}
	}

	// Token mode: print a bearer token for an author and exit
	if cfg.IssueTokenFor != "" {
		if err := issueToken(ctx, currentDB, cfg); err != nil {
			log.Fatal().Err(err).Msg("Error issuing token")
		}
		return
	}

	server, err := api.NewServer(cfg, currentDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		server.ShutdownGracefully(30 * time.Second)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func issueToken(ctx context.Context, db database.Database, cfg config.Config) error {
	user, err := db.UserRepo().FindOrCreate(ctx, cfg.IssueTokenFor)
	if err != nil {
		return fmt.Errorf("find or create user %q: %w", cfg.IssueTokenFor, err)
	}

	token, err := api.IssueToken(cfg.JWTSecret, user.ID, cfg.TokenTTL, time.Now())
	if err != nil {
		return err
	}

	log.Info().Str("username", user.Username).Str("userID", user.ID.String()).Dur("ttl", cfg.TokenTTL).Msg("Token issued")
	fmt.Println(token)
	return nil
}
