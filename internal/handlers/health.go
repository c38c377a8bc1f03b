package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jeremyjsx/dashboard/internal/storage"
)

type HealthDeps struct {
	DB          *sqlx.DB
	Storage     storage.Storage
	RabbitMQURL string
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func Health(deps *HealthDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		status := "healthy"

		if err := deps.DB.PingContext(ctx); err != nil {
			checks["db"] = "unhealthy"
			status = "unhealthy"
		} else {
			checks["db"] = "ok"
		}

		if _, err := deps.Storage.Exists(ctx, "__health__"); err != nil {
			checks["storage"] = "unhealthy"
			status = "unhealthy"
		} else {
			checks["storage"] = "ok"
		}

		if deps.RabbitMQURL != "" {
			conn, err := amqp.Dial(deps.RabbitMQURL)
			if err != nil {
				checks["rabbitmq"] = "unhealthy"
				if status == "healthy" {
					status = "degraded"
				}
			} else {
				_ = conn.Close()
				checks["rabbitmq"] = "ok"
			}
		} else {
			checks["rabbitmq"] = "skipped"
		}

		code := http.StatusOK
		if status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, r, code, healthResponse{Status: status, Checks: checks})
	}
}
