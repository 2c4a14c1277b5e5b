package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	recordKeyPrefix  = "record:"
	recentRecordsKey = "recent_records"

	defaultRecentLimit = 10
)

// ErrRecordNotFound is returned when a game record is not found
var ErrRecordNotFound = errors.New("game record not found")

// Config holds configuration for the Redis archive repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed archive repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveRecord persists a finished game record to Redis
func (r *redisRepository) SaveRecord(ctx context.Context, input *SaveRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	if input.Record.ID == "" {
		return errors.New("record ID cannot be empty")
	}

	// Marshal the record to JSON
	recordJSON, err := json.Marshal(input.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Save the record
	recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, input.Record.ID)
	pipe.Set(ctx, recordKey, recordJSON, 0)

	// Add the record to the recency index
	pipe.ZAdd(ctx, recentRecordsKey, redis.Z{
		Score:  float64(input.Record.FinishedAt.UnixNano()),
		Member: input.Record.ID,
	})

	// Execute the transaction
	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// GetRecord retrieves a finished game record by ID from Redis
func (r *redisRepository) GetRecord(ctx context.Context, input *GetRecordInput) (*GameRecord, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, input.RecordID)
	recordJSON, err := r.client.Get(ctx, recordKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	// Unmarshal the record from JSON
	var record GameRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &record, nil
}

// GetRecentRecords retrieves the most recently finished games from Redis
func (r *redisRepository) GetRecentRecords(ctx context.Context, input *GetRecentRecordsInput) (*GetRecentRecordsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	// Newest first from the recency index
	recordIDs, err := r.client.ZRevRange(ctx, recentRecordsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent records: %w", err)
	}

	records := make([]*GameRecord, 0, len(recordIDs))
	for _, recordID := range recordIDs {
		record, err := r.GetRecord(ctx, &GetRecordInput{
			RecordID: recordID,
		})
		if err != nil {
			// Skip records whose entries have been deleted out from under
			// the index
			if errors.Is(err, ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}

	return &GetRecentRecordsOutput{
		Records: records,
	}, nil
}
