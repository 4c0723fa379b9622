package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/minhland/adhub/internal/config"
	"github.com/minhland/adhub/internal/models"
)

const auditKeyPrefix = "audit:"

// NewRedisClient connects to the audit key-value store.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func newAuditEntry(recordID, channelKey string, raw json.RawMessage) models.AuditEntry {
	return models.AuditEntry{
		RecordID:  recordID,
		Channel:   channelKey,
		Response:  raw,
		Timestamp: time.Now(),
	}
}

// AuditRecorder keeps the full, untruncated response of every channel
// attempt, one entry per (record, channel) key, last attempt wins.
type AuditRecorder interface {
	Record(ctx context.Context, entry models.AuditEntry) error
	List(ctx context.Context, recordID string) ([]models.AuditEntry, error)
}

// RedisAuditRecorder stores audit entries as JSON under audit:{recordId}_{channel}.
type RedisAuditRecorder struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisAuditRecorder(client *redis.Client, logger *zap.Logger) *RedisAuditRecorder {
	return &RedisAuditRecorder{client: client, logger: logger}
}

func (r *RedisAuditRecorder) Record(ctx context.Context, entry models.AuditEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	key := auditKeyPrefix + entry.Key()
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write audit entry %s: %w", key, err)
	}

	r.logger.Debug("Recorded audit entry",
		zap.String("key", key),
		zap.Int("payload_bytes", len(entry.Response)))
	return nil
}

func (r *RedisAuditRecorder) List(ctx context.Context, recordID string) ([]models.AuditEntry, error) {
	pattern := auditKeyPrefix + recordID + "_*"

	var entries []models.AuditEntry
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to read audit entry %s: %w", iter.Val(), err)
		}

		var entry models.AuditEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			r.logger.Warn("Skipping malformed audit entry",
				zap.String("key", iter.Val()),
				zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan audit entries: %w", err)
	}

	return entries, nil
}
