package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wys-platform/project-service/internal/auth"
	"github.com/wys-platform/project-service/internal/bootstrap"
	"github.com/wys-platform/project-service/internal/projects/siblings"
	"github.com/wys-platform/project-service/internal/storage/postgres"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	publicKey, err := auth.LoadPublicKey(cfg.Auth)
	if err != nil {
		return err
	}

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Println("REDIS_ADDR not set, token revocation is disabled")
	}

	client := siblings.NewClient(cfg.Siblings)
	prober := siblings.NewProber(cfg.Siblings)
	if cfg.Siblings.ProbeSchedule != "" {
		c, err := prober.Start(cfg.Siblings.ProbeSchedule)
		if err != nil {
			return fmt.Errorf("sibling probe schedule: %w", err)
		}
		defer c.Stop()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Parallel:       cfg.Siblings.Parallel,
		DB:             db,
		Pool:           pool,
		Redis:          rdb,
		PublicKey:      publicKey,
		Siblings:       client,
		Prober:         prober,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout(),
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("%s listening on %s (env=%s)", cfg.App.ServiceName, srv.Addr, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-quit:
	}

	log.Println("Shutting down server gracefully ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Server Shutdown:", err)
	}
	log.Println("Server exiting")
	return nil
}
