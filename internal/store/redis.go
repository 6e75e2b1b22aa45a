// Package store persists analysis results in redis so dashboards can
// read the latest state and a short history without subscribing to the
// live stream.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

const (
	keyLatest = "eeg:results:latest"
	keyRecent = "eeg:results:recent"

	latestTTL    = time.Hour
	recentLength = 1000
)

type ResultStore struct {
	client *redis.Client
}

func NewResultStore(addr, password string, db int) *ResultStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &ResultStore{client: client}
}

func (s *ResultStore) Check(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *ResultStore) Stop() error {
	return s.client.Close()
}

// Save writes the latest snapshot and prepends to the capped history
// list in one pipeline round trip.
func (s *ResultStore) Save(ctx context.Context, result *eeg.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, keyLatest, payload, latestTTL)
	pipe.LPush(ctx, keyRecent, payload)
	pipe.LTrim(ctx, keyRecent, 0, recentLength-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis exec: %w", err)
	}
	return nil
}

// FetchLatest returns the most recent result, or nil when none has
// been stored yet.
func (s *ResultStore) FetchLatest(ctx context.Context) (*eeg.AnalysisResult, error) {
	data, err := s.client.Get(ctx, keyLatest).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var result eeg.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &result, nil
}

// Name implements the session publisher interface.
func (s *ResultStore) Name() string { return "redis" }

// Publish adapts Save to the publisher contract.
func (s *ResultStore) Publish(ctx context.Context, result *eeg.AnalysisResult) error {
	return s.Save(ctx, result)
}
