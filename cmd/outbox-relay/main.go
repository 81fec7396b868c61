package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/kafka"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/logging"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/metrics"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/outbox"
)

// The relay drains pending outbox rows to Kafka. A row is marked sent
// only after the broker acknowledged the publish; rows that fail stay
// pending and are retried on the next tick.

type cfg struct {
	Port         string        `env:"PORT" envDefault:"8082"`
	DatabaseURL  string        `env:"DATABASE_URL,required"`
	KafkaBrokers string        `env:"KAFKA_BROKERS,required"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
	BatchSize    int           `env:"BATCH_SIZE" envDefault:"100"`
}

func main() {
	var cfg cfg
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer pool.Close()

	client := kafka.NewClient(cfg.KafkaBrokers)
	if !client.Enabled() {
		log.Fatal(kafka.ErrDisabled)
	}

	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderlab",
		Subsystem: "outbox_relay",
		Name:      "events_published_total",
		Help:      "Outbox events published to the broker by result.",
	}, []string{"result"})
	prometheus.MustRegister(published)

	go relay(pool, client, cfg, published)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Printf("outbox-relay listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}
}

func relay(pool *pgxpool.Pool, client *kafka.Client, cfg cfg, published *prometheus.CounterVec) {
	cache := newWriterCache(client)
	defer cache.closeAll()

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		records, err := outbox.FetchPending(ctx, pool, cfg.BatchSize)
		if err != nil {
			logging.Log(logging.Fields{Service: "outbox-relay", Stage: "fetch", Status: "error", Message: err.Error()})
			cancel()
			continue
		}
		for _, rec := range records {
			writer := cache.writer(rec.Topic)
			if err := kafka.PublishRaw(ctx, writer, rec.Key, rec.Payload); err != nil {
				published.WithLabelValues("error").Inc()
				logging.Log(logging.Fields{Service: "outbox-relay", EventID: rec.EventID, Stage: "publish", Status: "error", Message: err.Error()})
				continue
			}
			if err := outbox.MarkSent(ctx, pool, rec.ID); err != nil {
				logging.Log(logging.Fields{Service: "outbox-relay", EventID: rec.EventID, Stage: "mark_sent", Status: "error", Message: err.Error()})
				continue
			}
			published.WithLabelValues("ok").Inc()
		}
		cancel()
	}
}

// writerCache keeps one kafka writer per topic seen in the outbox.
type writerCache struct {
	client  *kafka.Client
	writers map[string]*kafkago.Writer
}

func newWriterCache(client *kafka.Client) *writerCache {
	return &writerCache{client: client, writers: map[string]*kafkago.Writer{}}
}

func (c *writerCache) writer(topic string) *kafkago.Writer {
	if w, ok := c.writers[topic]; ok {
		return w
	}
	w := c.client.NewWriter(topic)
	c.writers[topic] = w
	return w
}

func (c *writerCache) closeAll() {
	for _, w := range c.writers {
		_ = w.Close()
	}
}
