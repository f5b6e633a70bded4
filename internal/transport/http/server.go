package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/LianaVolkova/yatube/internal/cache"
	"github.com/LianaVolkova/yatube/internal/config"
	"github.com/LianaVolkova/yatube/internal/database"
	"github.com/LianaVolkova/yatube/internal/handler"
	"github.com/LianaVolkova/yatube/internal/metrics"
	"github.com/LianaVolkova/yatube/internal/redis"
	"github.com/LianaVolkova/yatube/internal/repository"
	"github.com/LianaVolkova/yatube/internal/service"
	"github.com/LianaVolkova/yatube/internal/transport/http/middleware"
	"github.com/LianaVolkova/yatube/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// Run wires the whole application together and serves until SIGINT or
// SIGTERM.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(database.URL(cfg)); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Println("[Server] Migrations applied")

	// Without Redis the page cache falls back to an in-process map, which
	// the janitor sweeps.
	var pageCache cache.PageCache
	var sweeper worker.Sweeper
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("create redis client: %w", err)
		}
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx)
		cancel()
		if err != nil {
			return err
		}

		pageCache = cache.NewRedisPageCache(redisClient.Client)
		log.Println("[Server] Page cache: redis")
	} else {
		memCache := cache.NewMemoryPageCache()
		pageCache = memCache
		sweeper = memCache
		log.Println("[Server] Page cache: in-memory")
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	authService := service.NewAuthService(userRepo, sessionRepo, cfg)
	postService := service.NewPostService(postRepo, groupRepo, userRepo, collector)
	commentService := service.NewCommentService(commentRepo, postRepo, collector)
	followService := service.NewFollowService(followRepo, postRepo, userRepo, collector)

	authHandler := handler.NewAuthHandler(authService, cfg)
	postHandler := handler.NewPostHandler(postService, commentService, followService, pageCache, cfg.PageCacheTTL, collector)
	commentHandler := handler.NewCommentHandler(commentService)
	followHandler := handler.NewFollowHandler(followService)

	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer rateLimiter.Stop()

	janitor := worker.NewJanitor(sessionRepo, sweeper, time.Minute)
	janitor.Start()
	defer janitor.Stop()

	router := NewRouter(RouterConfig{
		AuthHandler:    authHandler,
		PostHandler:    postHandler,
		CommentHandler: commentHandler,
		FollowHandler:  followHandler,
		TokenValidator: authService,
		Recorder:       collector,
		Gatherer:       registry,
		RateLimiter:    rateLimiter,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Printf("[Server] Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Println("[Server] Stopped")
	return nil
}
