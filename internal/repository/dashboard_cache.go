package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jobportal/internal/domain/dto"

	"github.com/redis/go-redis/v9"
)

const dashboardKey = "admin:dashboard"

// DashboardCache holds the aggregated admin dashboard for a short window so
// repeated loads do not re-run the count queries across every table.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

func (c *DashboardCache) Get(ctx context.Context) (*dto.AdminDashboard, error) {
	data, err := c.client.Get(ctx, dashboardKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var dashboard dto.AdminDashboard
	if err := json.Unmarshal([]byte(data), &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (c *DashboardCache) Set(ctx context.Context, dashboard *dto.AdminDashboard) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey, data, c.ttl).Err()
}

func (c *DashboardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, dashboardKey).Err()
}
