package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"

	"github.com/tmcfarlane/whoami/internal/common/clock"
	"github.com/tmcfarlane/whoami/internal/common/shuffle"
	"github.com/tmcfarlane/whoami/internal/common/uuid"
	"github.com/tmcfarlane/whoami/internal/handlers/ws"
	"github.com/tmcfarlane/whoami/internal/repositories/archive"
	gameService "github.com/tmcfarlane/whoami/internal/services/game"
	"github.com/tmcfarlane/whoami/internal/services/messaging"
)

// version is stamped at build time via -ldflags
var version = "dev"

func main() {
	// Load .env when present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	archiveRepo, err := archive.NewRedis(&archive.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create archive repository: %v", err)
	}

	// Initialize game service
	gameSvc, err := gameService.New(&gameService.Config{
		TurnDuration:      getEnvDuration("TURN_SECONDS", gameService.DefaultTurnDuration),
		GuessLockDuration: getEnvDuration("GUESS_LOCK_SECONDS", gameService.DefaultGuessLockDuration),
		MinPlayers:        getEnvInt("MIN_PLAYERS", gameService.DefaultMinPlayers),
		MaxPlayers:        getEnvInt("MAX_PLAYERS", gameService.DefaultMaxPlayers),
		ArchiveRepo:       archiveRepo,
		Clock:             &clock.DefaultClock{},
		UUIDGenerator:     uuid.New(),
		Shuffler:          shuffle.New(&shuffle.Config{}),
	})
	if err != nil {
		log.Fatalf("Failed to create game service: %v", err)
	}

	// Initialize messaging service
	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		PreferredTone: messaging.MessageTone(getEnv("MESSAGE_TONE", "")),
	})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	// Initialize websocket handler
	wsHandler, err := ws.New(&ws.Config{
		GameService: gameSvc,
		Messaging:   messagingSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create websocket handler: %v", err)
	}

	// Timer-driven turn changes flow back out through the handler
	gameSvc.SetNotifier(wsHandler)

	router := httprouter.New()
	router.GET("/ws", wsHandler.ServeWS)
	router.GET("/rooms/:code/qr", wsHandler.ServeQR)
	router.GET("/healthz", healthHandler(redisClient))
	router.GET("/version", versionHandler)
	router.GET("/recent", recentGamesHandler(archiveRepo))

	server := &http.Server{
		Addr:    getEnv("LISTEN_ADDR", ":8080"),
		Handler: router,
	}

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server has been shut down")
}

// healthHandler reports liveness, including the Redis dependency
func healthHandler(redisClient *redis.Client) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// recentGamesHandler serves the most recently finished games
func recentGamesHandler(repo archive.Repository) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		limit := getQueryInt(r, "limit", 0)

		output, err := repo.GetRecentRecords(r.Context(), &archive.GetRecentRecordsInput{
			Limit: limit,
		})
		if err != nil {
			http.Error(w, "failed to load recent games", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(output.Records); err != nil {
			log.Printf("Error encoding recent games: %v", err)
		}
	}
}

// getQueryInt reads an integer query parameter or returns a default value
func getQueryInt(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

func versionHandler(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(version))
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration reads a whole-seconds environment variable or returns a
// default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return time.Duration(n) * time.Second
}
