package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const RedisRevokedTokenKeyPrefix = "revoked_token:"

// minRevocationTTL keeps a deny-list entry around even for a token that is
// about to expire, covering clock skew with the auth provider.
const minRevocationTTL = time.Minute

// SessionRevocation is the deny-list of signed-out session tokens.
type SessionRevocation interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisSessionRevocation struct {
	redisClient *redis.Client
}

func NewSessionRevocation(redisClient *redis.Client) SessionRevocation {
	return &redisSessionRevocation{redisClient: redisClient}
}

func (s *redisSessionRevocation) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}

	key := RedisRevokedTokenKeyPrefix + tokenID
	if err := s.redisClient.Set(ctx, key, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", tokenID, err)
	}
	return nil
}

func (s *redisSessionRevocation) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, RedisRevokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token %s: %w", tokenID, err)
	}
	return exists > 0, nil
}
