package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:"

// DefaultRevocationTTL outlives any access token we issue.
const DefaultRevocationTTL = 30 * 24 * time.Hour

// RevocationRepository keeps revoked token ids in redis until they would have expired anyway.
type RevocationRepository struct {
	rdb *redis.Client
}

func NewRevocationRepository(rdb *redis.Client) *RevocationRepository {
	return &RevocationRepository{rdb: rdb}
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.rdb.Exists(ctx, revokedPrefix+jti).Result()
	return exists == 1, err
}

func (r *RevocationRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultRevocationTTL
	}
	return r.rdb.Set(ctx, revokedPrefix+jti, "true", ttl).Err()
}
