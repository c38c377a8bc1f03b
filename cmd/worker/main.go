package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jeremyjsx/dashboard/internal/config"
	"github.com/jeremyjsx/dashboard/internal/events"
	"github.com/jeremyjsx/dashboard/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if cfg.RabbitMQURL == "" {
		logger.Error("RABBITMQ_URL is required")
		os.Exit(1)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", "error", err)
		os.Exit(1)
	}
	defer ch.Close()

	if err := events.DeclareExchange(ch); err != nil {
		logger.Error("failed to declare exchange", "error", err)
		os.Exit(1)
	}

	q, err := ch.QueueDeclare(events.QueueName, true, false, false, false, nil)
	if err != nil {
		logger.Error("failed to declare queue", "error", err)
		os.Exit(1)
	}

	if err := ch.QueueBind(q.Name, events.BindingKey, events.ExchangeName, false, nil); err != nil {
		logger.Error("failed to bind queue", "error", err)
		os.Exit(1)
	}

	deliveries, err := ch.Consume(q.Name, "post-events-worker", false, false, false, false, nil)
	if err != nil {
		logger.Error("failed to start consuming", "error", err)
		os.Exit(1)
	}

	logger.Info("post events worker started", "queue", q.Name, "binding", events.BindingKey)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-quit:
			logger.Info("worker shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			handlePostEvent(logger, d)
		}
	}
}

func handlePostEvent(logger *slog.Logger, d amqp.Delivery) {
	var e events.PostEvent
	if err := json.Unmarshal(d.Body, &e); err != nil {
		logger.Error("invalid event body", "error", err)
		_ = d.Nack(false, false)
		return
	}
	switch e.Type {
	case events.TypePostCreated, events.TypePostDeleted:
		logger.Info("post event received",
			"type", e.Type,
			"post_id", e.Payload.PostID,
			"slug", e.Payload.Slug,
			"title", e.Payload.Title,
		)
	default:
		logger.Debug("ignoring event type", "type", e.Type)
	}

	if err := d.Ack(false); err != nil {
		logger.Error("failed to ack", "error", err)
	}
}
