package chat

import (
	"context"
	"fmt"
	"time"

	"clinichub/models"
	"clinichub/utils"

	"github.com/avast/retry-go/v4"
	stream "github.com/GetStream/stream-chat-go/v5"
	"go.uber.org/zap"
)

// StreamClient implements ChatClient on Stream Chat. Network calls are retried
// with backoff.
type StreamClient struct {
	client *stream.Client
}

func NewStreamClient(apiKey, apiSecret string) (*StreamClient, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("stream credentials not set in configuration")
	}
	c, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream client: %w", err)
	}
	return &StreamClient{client: c}, nil
}

func withRetry(ctx context.Context, op string, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			utils.GetLogger().Warn("Stream call failed, retrying",
				zap.String("op", op),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
}

func (s *StreamClient) UpsertUsers(ctx context.Context, users ...ChatUser) error {
	su := make([]*stream.User, 0, len(users))
	for _, u := range users {
		su = append(su, &stream.User{ID: u.ID, Name: u.Name, Image: u.Image})
	}
	return withRetry(ctx, "upsert users", func() error {
		_, err := s.client.UpsertUsers(ctx, su...)
		return err
	})
}

func (s *StreamClient) CreateToken(userID string, expire time.Time) (string, error) {
	return s.client.CreateToken(userID, expire)
}

// EnsureChannel creates the channel if missing. Creating an existing channel
// with the same members is a no-op on Stream.
func (s *StreamClient) EnsureChannel(ctx context.Context, channelID, creatorID string, members []string) error {
	return withRetry(ctx, "create channel", func() error {
		_, err := s.client.CreateChannel(ctx, ChannelType, channelID, creatorID, &stream.ChannelRequest{Members: members})
		return err
	})
}

func (s *StreamClient) QueryChannels(ctx context.Context, userID string) ([]models.ChatChannel, error) {
	var resp *stream.QueryChannelsResponse
	err := withRetry(ctx, "query channels", func() error {
		var err error
		resp, err = s.client.QueryChannels(ctx, &stream.QueryOption{
			Filter: map[string]interface{}{
				"type":    ChannelType,
				"members": map[string]interface{}{"$in": []string{userID}},
			},
			Limit: 100,
		}, &stream.SortOption{Field: "last_message_at", Direction: -1})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}

	out := make([]models.ChatChannel, 0, len(resp.Channels))
	for _, ch := range resp.Channels {
		members := make([]string, 0, len(ch.Members))
		for _, m := range ch.Members {
			members = append(members, m.UserID)
		}
		out = append(out, models.ChatChannel{
			ID:            ch.ID,
			MemberIDs:     members,
			LastMessageAt: ch.LastMessageAt,
			CreatedAt:     ch.CreatedAt,
		})
	}
	return out, nil
}
