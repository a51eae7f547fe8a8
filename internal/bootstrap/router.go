package bootstrap

import (
	"crypto/rsa"
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/wys-platform/project-service/internal/api/http"
	"github.com/wys-platform/project-service/internal/api/http/middleware"
	"github.com/wys-platform/project-service/internal/api/http/routes"
	"github.com/wys-platform/project-service/internal/projects/siblings"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Parallel    bool

	// RequestTimeout is the deadline put on every request context; zero means none.
	RequestTimeout time.Duration

	DB        *sql.DB
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	PublicKey *rsa.PublicKey
	Siblings  *siblings.Client
	Prober    *siblings.Prober
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	if dep.RequestTimeout > 0 {
		r.Use(middleware.RequestTimeout(dep.RequestTimeout))
	}
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	var pinger httpapi.Pinger
	if dep.Pool != nil {
		pinger = dep.Pool
	}
	var metrics *siblings.Metrics
	if dep.Siblings != nil {
		metrics = dep.Siblings.Metrics()
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, pinger, dep.Redis, dep.Prober, metrics)
	healthHandler.RegisterRoutes(r)

	routes.RegisterAPI(r, routes.APIDeps{
		DB:        dep.DB,
		Redis:     dep.Redis,
		PublicKey: dep.PublicKey,
		Siblings:  dep.Siblings,
		Parallel:  dep.Parallel,
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
