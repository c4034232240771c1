package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripvault/internal/docstore"
	"tripvault/internal/draft"
	"tripvault/internal/events"
	"tripvault/internal/hashtag"
	"tripvault/internal/imagestore"
	"tripvault/internal/item"
	"tripvault/internal/itinerary"
	"tripvault/internal/jwttoken"
	"tripvault/internal/photo"
	"tripvault/internal/platform/config"
	"tripvault/internal/platform/httpserver"
	"tripvault/internal/platform/logger"
	"tripvault/internal/platform/metrics"
	"tripvault/internal/platform/middleware"
	platformredis "tripvault/internal/platform/redis"
	"tripvault/internal/route"
	transporthttp "tripvault/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	var store docstore.Store
	var health transporthttp.HealthChecker
	if redisClient != nil {
		store = docstore.NewRedisStore(redisClient.Client)
		health = redisClient
		defer redisClient.Close()
		log.Info("document store: redis")
	} else {
		store = docstore.NewInMemoryStore()
		log.Warn("document store: in-memory, data will not survive a restart")
	}

	publisher, err := events.New(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	if err != nil {
		log.Error("kafka producer setup failed", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	images, err := imagestore.NewDisk(cfg.MediaDir)
	if err != nil {
		log.Error("media dir setup failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	itineraryRepo := itinerary.NewRepository(store, log)
	itemRepo := item.NewRepository(store, log)
	routeRepo := route.NewRepository(store, log)
	draftRepo := draft.NewRepository(store, log)

	itinerarySvc := itinerary.NewService(itineraryRepo, itemRepo, publisher, log)
	itemSvc := item.NewService(itemRepo, itineraryRepo, publisher, log)
	photoSvc := photo.NewService(itineraryRepo, itemRepo, images, publisher, log)
	routeSvc := route.NewService(routeRepo, itineraryRepo, publisher, log)
	hashtagSvc := hashtag.NewService(itineraryRepo)

	var validator middleware.TokenValidator
	if cfg.JWTSigningKey != "" {
		validator = jwttoken.NewService(cfg.JWTSigningKey, "tripvault")
		log.Info("bearer auth enabled")
	}

	router := transporthttp.NewRouter(transporthttp.RouterConfig{
		Logger:    log,
		Health:    health,
		Validator: validator,
		Itinerary: transporthttp.NewItineraryHandler(itinerarySvc, m, log),
		Item:      transporthttp.NewItemHandler(itemSvc, m, log),
		Photo:     transporthttp.NewPhotoHandler(photoSvc, m, log),
		Route:     transporthttp.NewRouteHandler(routeSvc, m, log),
		Draft:     transporthttp.NewDraftHandler(draftRepo, log),
		Hashtag:   transporthttp.NewHashtagHandler(hashtagSvc, log),
		Location:  transporthttp.NewLocationHandler(nil, log),
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting tripvault", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("shut down cleanly")
}
