package outbox

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"

	"canteen-orders/logging"
)

const (
	defaultInterval = 2 * time.Second
	fetchBatchSize  = 100
)

// Relay drains pending outbox rows to a Kafka writer. Rows that fail
// to publish stay pending and are retried on the next tick.
type Relay struct {
	pool     *pgxpool.Pool
	writer   *kafka.Writer
	interval time.Duration
}

func NewRelay(pool *pgxpool.Pool, writer *kafka.Writer) *Relay {
	return &Relay{pool: pool, writer: writer, interval: defaultInterval}
}

// Run loops until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer r.writer.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.drain(ctx)
		}
	}
}

func (r *Relay) drain(ctx context.Context) {
	records, err := FetchPending(ctx, r.pool, fetchBatchSize)
	if err != nil {
		logging.Log(logging.Fields{Service: "outbox-relay", Status: "fetch_error", Message: err.Error()})
		return
	}

	for _, rec := range records {
		msg := kafka.Message{Key: []byte(rec.Key), Value: rec.Payload, Time: time.Now().UTC()}
		if err := r.writer.WriteMessages(ctx, msg); err != nil {
			logging.Log(logging.Fields{Service: "outbox-relay", EventID: rec.EventID, Status: "publish_error", Message: err.Error()})
			return
		}
		if err := MarkSent(ctx, r.pool, rec.ID); err != nil {
			logging.Log(logging.Fields{Service: "outbox-relay", EventID: rec.EventID, Status: "mark_sent_error", Message: err.Error()})
			return
		}
	}
}
