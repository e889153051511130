package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/eventlocator/backend/internal/adapters/database/redis/reminders"
)

type Client struct {
	Reminders *reminders.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	reminderStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := reminderStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping reminder storage: %w", err)
	}

	return &Client{
		Reminders: reminders.NewStorage(reminderStorage),
	}, nil
}
