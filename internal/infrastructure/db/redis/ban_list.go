package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// BanList caches the ban state of users so the auth boundary can reject a
// banned actor without a database round trip.
// Key format: banned:<user_id>
type BanList struct {
	client *redis.Client
}

func NewBanList(client *redis.Client) *BanList {
	return &BanList{client: client}
}

// IsBanned reports whether the user currently has a ban entry.
func (b *BanList) IsBanned(ctx context.Context, userID string) (bool, error) {
	n, err := b.client.Exists(ctx, banKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("ban lookup: %w", err)
	}
	return n > 0, nil
}

// Ban records the ban without expiry; it lasts until Unban.
func (b *BanList) Ban(ctx context.Context, userID string) error {
	return b.client.Set(ctx, banKey(userID), "1", 0).Err()
}

func (b *BanList) Unban(ctx context.Context, userID string) error {
	return b.client.Del(ctx, banKey(userID)).Err()
}

func banKey(userID string) string {
	return key("banned", userID)
}
