package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Lucas-Nascimentto/projeto-fan/config"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/application"
	pginfra "github.com/Lucas-Nascimentto/projeto-fan/internal/infrastructure/postgres"
)

// The worker drains the audit-event queue into the audit_events table.
// Events are published best-effort by the API; this side is the durable
// half, so failed inserts are nacked back onto the queue.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQEventQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev application.Event
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			payload, _ := json.Marshal(ev.Payload)

			c, cancel := context.WithTimeout(ctx, 5*time.Second)
			_, err := pool.Exec(c, `
				INSERT INTO audit_events (event_type, actor_id, entity_id, payload, created_at)
				VALUES ($1, $2, $3, $4, $5)
			`, ev.Type, ev.ActorID, ev.EntityID, payload, ev.At)
			cancel()
			if err != nil {
				log.Printf("insert failed: %v", err)
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("audit worker listening on queue=%s", cfg.RabbitMQEventQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
