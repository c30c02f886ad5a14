package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/corray333/backend-labs/presale/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/presale/internal/service/models/auditlog"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

// AuditRabbitMQRepository publishes audit log entries to RabbitMQ for
// downstream consumers.
type AuditRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewAuditRabbitMQRepository(client *rabbitmq.Client) *AuditRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       "presale.audit.recorded",
		Durable:    false,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &AuditRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// Publish sends the entries to the audit queue. Publishing is detached from
// the caller's context so an already-finished action still gets its events.
func (r *AuditRabbitMQRepository) Publish(ctx context.Context, entries []auditlog.Entry) error {
	publishCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	g, _ := errgroup.WithContext(publishCtx)
	g.SetLimit(3)

	for _, entry := range entries {
		g.Go(func() error {
			entryData, err := json.Marshal(entry)
			if err != nil {
				return err
			}

			return r.client.Channel().Publish(
				"",
				r.queue.Name,
				false,
				false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        entryData,
				},
			)
		})
	}

	return g.Wait()
}
