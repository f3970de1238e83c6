package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EarningRecordedJob is the job type consumed by the mail worker.
const EarningRecordedJob = "earning.recorded"

// OutboxJob is the JSON document pushed onto the notification queue.
type OutboxJob struct {
	JobID      string                     `json:"jobID"`
	Type       string                     `json:"type"`
	EnqueuedAt time.Time                  `json:"enqueuedAt"`
	Payload    domain.EarningNotification `json:"payload"`
}

// RedisOutbox queues notifications on a redis list for an out-of-process mailer.
type RedisOutbox struct {
	client redis.Cmdable
	queue  string
	now    func() time.Time
}

var _ portssvc.NotificationSender = (*RedisOutbox)(nil)

func NewRedisOutbox(client redis.Cmdable, queue string) *RedisOutbox {
	return &RedisOutbox{client: client, queue: queue, now: time.Now}
}

// NotifyEarning LPUSHes one job; consumers BRPOP from the other end.
func (o *RedisOutbox) NotifyEarning(ctx context.Context, n domain.EarningNotification) error {
	job := OutboxJob{
		JobID:      uuid.NewString(),
		Type:       EarningRecordedJob,
		EnqueuedAt: o.now().UTC(),
		Payload:    n,
	}
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification job: %w", err)
	}
	if err := o.client.LPush(ctx, o.queue, body).Err(); err != nil {
		return fmt.Errorf("enqueue notification for earning %s: %w", n.EarningID, err)
	}
	return nil
}

// Connect initializes a Redis client from URL or host:port input and pings it.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
