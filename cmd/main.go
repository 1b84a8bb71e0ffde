package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"ride-request-service/internal/config"
	"ride-request-service/internal/events"
	"ride-request-service/internal/rides"
	"ride-request-service/internal/tracking"
	"ride-request-service/migrations"
	"ride-request-service/pkg/db"
	"ride-request-service/pkg/kafka"
	"ride-request-service/pkg/mongo"
	rredis "ride-request-service/pkg/redis"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── 1. Config ──
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// ── 2. Key-value store ──
	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	// ── 3. Notifications ──
	wsHub := tracking.NewHub()
	notifiers := rides.Notifiers{wsHub}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaClient := kafka.NewClient(cfg.KafkaBrokers)
		if err := kafkaClient.EnsureTopics(ctx, 20, kafka.TopicRideRequested); err != nil {
			log.Fatal(err)
		}
		notifiers = append(notifiers, rides.NotifierFunc(func(ctx context.Context, ev events.RideRequestedEvent) error {
			return kafkaClient.Publish(ctx, kafka.TopicRideRequested, ev.RideID, ev)
		}))
	} else {
		log.Println("KAFKA_BROKERS not set, ride.requested events disabled")
	}

	// ── 4. Pipeline ──
	pipeline := rides.NewPipeline(rides.NewStore(kv), notifiers)

	// ── 5. HTTP router ──
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"ride-request-service"}`))
	})

	r.Mount("/ride-requests", rides.NewHandler(pipeline, cfg.MaxBodyBytes).Routes())
	r.Mount("/ws", wsHub.Routes())

	// ── 6. Start server ──
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		log.Printf("ride-request-service listening on :%s (store=%s)", cfg.Port, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// ── 7. Graceful shutdown ──
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	srv.Shutdown(shutCtx)
	if err := pipeline.Wait(shutCtx); err != nil {
		log.Printf("gave up waiting for ride.requested notifications: %v", err)
	}
}

// openStore connects the configured backend. The returned client is shared
// by every request.
func openStore(ctx context.Context, cfg *config.Config) (rides.ItemPutter, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL, 30)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(ctx, migrations.FS); err != nil {
			database.Close()
			return nil, nil, err
		}
		return database, database.Close, nil

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close(context.Background()) }, nil

	default:
		client, err := rredis.NewClient(cfg.RedisAddr, 20)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	}
}
