package otpcodes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/server/models"
)

const keyPrefix = "otp:"

// RedisRepository stores OTP records in Redis with a TTL matching the
// code's expiry, so stale records vanish on their own instead of requiring
// a sweeper. The expiry instant is still persisted in the value because
// verification checks it explicitly.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

type redisRecord struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Replace relies on SET overwriting the key; one key per contact makes the
// swap atomic without any transaction.
func (r *RedisRepository) Replace(ctx context.Context, code *models.OtpCode) error {
	rec := redisRecord{Code: code.Code, ExpiresAt: code.ExpiresAt, CreatedAt: code.CreatedAt}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}

	ttl := time.Until(code.ExpiresAt)
	if ttl <= 0 {
		// Already expired on arrival; just drop whatever was there.
		return r.DeleteByContact(ctx, code.Contact)
	}

	if err := r.client.Set(ctx, keyPrefix+code.Contact, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}

	return nil
}

func (r *RedisRepository) FindByContact(ctx context.Context, contact string) (*models.OtpCode, error) {
	payload, err := r.client.Get(ctx, keyPrefix+contact).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	var rec redisRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal otp record: %w", err)
	}

	return &models.OtpCode{
		Contact:   contact,
		Code:      rec.Code,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (r *RedisRepository) DeleteByContact(ctx context.Context, contact string) error {
	if err := r.client.Del(ctx, keyPrefix+contact).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
