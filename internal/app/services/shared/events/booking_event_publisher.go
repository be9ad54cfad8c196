package events

import (
	"context"
	"fmt"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/models"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends booking and room status events to a topic exchange and waits for broker confirms.
type Publisher struct {
	ch       *amqp.Channel
	log      *zap.Logger
	exchange string
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

func NewPublisher(ch *amqp.Channel, log *zap.Logger, exchange string) (contracts.BookingEventPublisher, error) {
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Publisher{
		ch:       ch,
		log:      log,
		exchange: exchange,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

func (p *Publisher) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("Publisher.PublishBookingEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoutingKey, event.Event),
		zap.String(constvars.LoggingBookingIDKey, event.Booking.ID),
	)

	return p.publish(ctx, event.Event, event)
}

func (p *Publisher) PublishLiveStatus(ctx context.Context, status models.LiveStatus) error {
	p.log.Info("Publisher.PublishLiveStatus called",
		zap.String(constvars.LoggingRoutingKey, constvars.EventRoomStatusChanged),
		zap.Bool(constvars.LoggingOccupiedKey, status.Occupied),
	)

	return p.publish(ctx, constvars.EventRoomStatusChanged, status)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.exchange)
	}

	select {
	case confirmed := <-p.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), p.exchange)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), p.exchange)
	}

	p.log.Info("Publisher.publish succeeded",
		zap.String(constvars.LoggingExchangeKey, p.exchange),
		zap.String(constvars.LoggingRoutingKey, routingKey),
	)
	return nil
}

// NopPublisher drops every event. The memory driver runs without a broker.
type NopPublisher struct{}

func (NopPublisher) PublishBookingEvent(context.Context, models.BookingEvent) error { return nil }

func (NopPublisher) PublishLiveStatus(context.Context, models.LiveStatus) error { return nil }
