package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const deliveryKeyPrefix = "deedwatch:mail:delivered:"

type RedisClaimer struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClaimer(client *redis.Client, ttl time.Duration) *RedisClaimer {
	return &RedisClaimer{client: client, ttl: ttl}
}

func (c *RedisClaimer) Claim(ctx context.Context, reminderLogID int64) (bool, error) {
	ok, err := c.client.SetNX(ctx, deliveryKey(reminderLogID), time.Now().UTC().Format(time.RFC3339), c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claiming delivery key: %w", err)
	}
	return ok, nil
}

func (c *RedisClaimer) Release(ctx context.Context, reminderLogID int64) error {
	if err := c.client.Del(ctx, deliveryKey(reminderLogID)).Err(); err != nil {
		return fmt.Errorf("releasing delivery key: %w", err)
	}
	return nil
}

func deliveryKey(reminderLogID int64) string {
	return fmt.Sprintf("%s%d", deliveryKeyPrefix, reminderLogID)
}
