// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vhlong/telegate/internal/platform/apperr"
	"github.com/vhlong/telegate/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Each session is one JSON value keyed by token hash with a TTL matching the
// refresh token, so expiry needs no sweeper. A per-user set of token hashes
// supports revoking every session at once.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func userSessionsKey(userID string) string {
	return constants.RedisPrefixSession + "user:" + userID
}

/*
Create stores the session under its token hash with the session's TTL.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Encoding or execution errors
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	pipeline := repository.client.TxPipeline()
	pipeline.Set(context, sessionKey(session.TokenHash), payload, ttl)
	pipeline.SAdd(context, userSessionsKey(session.UserID), session.TokenHash)
	pipeline.Expire(context, userSessionsKey(session.UserID), ttl)
	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash retrieves the session stored under the token hash.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated entity
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	session.TokenHash = tokenHash

	return session, nil
}

/*
Revoke deletes the session stored under the token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Execution failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	session, err := repository.FindByTokenHash(context, tokenHash)
	if err != nil {
		// Already gone; revocation is idempotent.
		return nil
	}

	pipeline := repository.client.TxPipeline()
	pipeline.Del(context, sessionKey(tokenHash))
	pipeline.SRem(context, userSessionsKey(session.UserID), tokenHash)
	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeAll deletes every session belonging to the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	tokenHashes, err := repository.client.SMembers(context, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	pipeline := repository.client.TxPipeline()
	for _, tokenHash := range tokenHashes {
		pipeline.Del(context, sessionKey(tokenHash))
	}
	pipeline.Del(context, userSessionsKey(userID))
	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	return nil
}
