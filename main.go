package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodshare/configs"
	"foodshare/pkg/geo"
	"foodshare/pkg/notify"
	"foodshare/repository"
	"foodshare/routes"
	"foodshare/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := configs.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	log.Println("✅ database ready:", cfg.DBDriver)

	// Geo (OpenRouteService + LRU ของระยะทาง)
	provider, err := geo.NewCachedProvider(
		geo.NewORSClient(cfg.ORSBaseURL, cfg.ORSAPIKey, cfg.RequestTimeout),
		cfg.DistanceCacheSize,
	)
	if err != nil {
		log.Fatalf("geo cache: %v", err)
	}

	// Notifications
	notifier, worker, closeNotifier, err := buildNotifier(cfg)
	if err != nil {
		log.Fatalf("notifier: %v", err)
	}
	defer closeNotifier()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// HTTP
	hub := ws.NewOrderHub()
	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Store:    repository.NewStore(db),
		Geo:      provider,
		Notifier: notifier,
		Hub:      hub,
	})
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	if worker != nil {
		g.Go(func() error { return worker.Run(gctx) })
	}
	g.Go(func() error {
		log.Println("🚀 Server running at", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Println("👋 bye")
}

// buildNotifier เลือกช่องทางส่งอีเมล:
// AMQP_URL -> queue + mail worker, MAILGUN_* -> ส่งตรง, ไม่มีอะไรเลย -> log
func buildNotifier(cfg *configs.Config) (notify.Notifier, *notify.MailWorker, func(), error) {
	catalog, err := notify.DefaultCatalog()
	if err != nil {
		return nil, nil, nil, err
	}

	var delivery notify.Notifier = notify.LogNotifier{}
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		delivery = notify.NewMailgunSender(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.CommsEmail, catalog)
		log.Println("📧 mailgun delivery enabled")
	}

	if cfg.AMQPURL == "" {
		return notify.Async(delivery, cfg.NotifyTimeout), nil, func() {}, nil
	}

	pub := notify.NewPublisher(cfg.AMQPURL, cfg.MailQueue)
	log.Println("🐇 notifications queued on", cfg.MailQueue)
	worker := notify.NewMailWorker(cfg.AMQPURL, cfg.MailQueue, delivery, cfg.NotifyTimeout)
	closeFn := func() {
		if err := pub.Close(); err != nil {
			log.Printf("⚠️ close publisher: %v", err)
		}
	}
	return notify.Async(pub, cfg.NotifyTimeout), worker, closeFn, nil
}
