package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/model"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const tokenKey = "gcal_sync:oauth_token"

// TokenRepository persists the Google OAuth token between runs.
type TokenRepository struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
}

func NewTokenRepository(pool *redis.Pool, logger *zap.SugaredLogger) *TokenRepository {
	return &TokenRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *TokenRepository) Get(ctx context.Context) (*oauth2.Token, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer r.closeConn(conn)

	data, err := redis.Bytes(conn.Do("GET", tokenKey))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("GET token: %w", err)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}

	return token, nil
}

func (r *TokenRepository) Save(ctx context.Context, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer r.closeConn(conn)

	if _, err := conn.Do("SET", tokenKey, data); err != nil {
		return fmt.Errorf("SET token: %w", err)
	}

	return nil
}

func (r *TokenRepository) closeConn(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		r.logger.Errorw("Failed closing redis connection", "err", err)
	}
}
