package harvestqueue

import (
	"context"
	"fmt"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const DefaultQueueName = "harvest_events"

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Service publishes HarvestEvents to a durable queue and waits for the
// broker to confirm each one.
type Service struct {
	ch       publishChannel
	log      *zap.Logger
	queue    string
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

var _ contracts.HarvestNotifier = (*Service)(nil)

// NewService declares the queue and enables publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, queue string) (*Service, error) {
	if queue == "" {
		queue = DefaultQueueName
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		queue:    queue,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// Notify publishes one event persistently.
func (s *Service) Notify(ctx context.Context, event contracts.HarvestEvent) error {
	s.log.Info("HarvestQueue.Notify called",
		zap.String(constvars.LoggingRunIDKey, event.RunID),
		zap.String(constvars.LoggingScraperIDKey, event.ScraperID),
		zap.String(constvars.LoggingQueueKey, s.queue),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.RunID,
	}

	if err := s.ch.PublishWithContext(ctx, "", s.queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublish(err, s.queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublish(fmt.Errorf("message not confirmed"), s.queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublish(ctx.Err(), s.queue)
	}
	return nil
}
