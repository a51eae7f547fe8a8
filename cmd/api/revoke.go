package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wys-platform/project-service/internal/auth/repository"
	"github.com/wys-platform/project-service/internal/bootstrap"
)

var revokeTTL time.Duration

var revokeCmd = &cobra.Command{
	Use:   "revoke <jti>",
	Short: "Revoke an access token by its jti claim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		if rdb == nil {
			return errors.New("REDIS_ADDR is required to revoke tokens")
		}
		defer rdb.Close()

		if err := repository.NewRevocationRepository(rdb).Revoke(ctx, args[0], revokeTTL); err != nil {
			return fmt.Errorf("revoking %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", args[0])
		return nil
	},
}

func init() {
	revokeCmd.Flags().DurationVar(&revokeTTL, "ttl", repository.DefaultRevocationTTL, "how long the revocation is kept")
}
