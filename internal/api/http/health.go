package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/wys-platform/project-service/internal/projects/siblings"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string                          `json:"status"`
	Timestamp time.Time                       `json:"timestamp"`
	Service   string                          `json:"service"`
	Version   string                          `json:"version"`
	DB        string                          `json:"db,omitempty"`
	Redis     string                          `json:"redis,omitempty"`
	Siblings  map[string]siblings.ProbeStatus `json:"siblings,omitempty"`
	Calls     map[string]siblings.KindStats   `json:"sibling_calls,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	rdb         *redis.Client
	prober      *siblings.Prober
	metrics     *siblings.Metrics
}

// NewHealthHandler creates the handler. Any dependency may be nil and is then
// reported as disabled or omitted.
func NewHealthHandler(serviceName, version string, db Pinger, rdb *redis.Client, prober *siblings.Prober, metrics *siblings.Metrics) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		rdb:         rdb,
		prober:      prober,
		metrics:     metrics,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	dbStatus := "disabled"
	if h.db != nil {
		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	redisStatus := "disabled"
	if h.rdb != nil {
		if err := h.rdb.Ping(pingCtx).Err(); err != nil {
			redisStatus = "down"
		} else {
			redisStatus = "up"
		}
	}

	status := "healthy"
	if dbStatus == "down" || redisStatus == "down" {
		status = "degraded"
	}

	resp := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Redis:     redisStatus,
	}
	if h.prober != nil {
		resp.Siblings = h.prober.Statuses()
	}
	if h.metrics != nil {
		resp.Calls = h.metrics.Snapshot()
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
