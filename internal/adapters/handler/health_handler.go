package handler

import (
	"context"
	"net/http"
	"os"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StatusPinger reports reachability via an error, e.g. a wrapped Redis ping.
type StatusPinger func(ctx context.Context) error

// BrokerStatus is satisfied by the RabbitMQ broker.
type BrokerStatus interface {
	IsConnected() bool
}

type HealthHandler struct {
	db        Pinger
	redisPing StatusPinger
	broker    BrokerStatus
	startTime time.Time
	version   string
}

func NewHealthHandler(db Pinger, redisPing StatusPinger, broker BrokerStatus) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		db:        db,
		redisPing: redisPing,
		broker:    broker,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp,omitempty"`
	Uptime    string           `json:"uptime,omitempty"`
	Version   string           `json:"version,omitempty"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is the liveness probe.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	})
}

// Ready checks the store, the draft cache and the notification broker.
// The broker is reported but does not fail readiness since notifications
// are best effort.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]Check{
		"database": h.checkDatabase(ctx),
		"redis":    h.checkRedis(ctx),
		"broker":   h.checkBroker(),
	}

	status, httpStatus := "UP", http.StatusOK
	if checks["database"].Status != "UP" || checks["redis"].Status != "UP" {
		status, httpStatus = "DOWN", http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: status, Checks: checks})
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{Status: "DOWN", Message: "Database connection is not initialized"}
	}
	if err := h.db.PingContext(ctx); err != nil {
		return Check{Status: "DOWN", Message: "Cannot connect to database"}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkRedis(ctx context.Context) Check {
	if h.redisPing == nil {
		return Check{Status: "DOWN", Message: "Redis client is not initialized"}
	}
	if err := h.redisPing(ctx); err != nil {
		return Check{Status: "DOWN", Message: "Cannot connect to Redis"}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkBroker() Check {
	if h.broker == nil || !h.broker.IsConnected() {
		return Check{Status: "DEGRADED", Message: "Notification broker unavailable"}
	}
	return Check{Status: "UP"}
}
