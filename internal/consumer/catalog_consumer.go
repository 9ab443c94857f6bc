package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cachopreto/webdev-semester-team1/internal/dto"
	"github.com/cachopreto/webdev-semester-team1/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	RoutingKeyVenue    = "catalog.venue"
	RoutingKeyShow     = "catalog.show"
	RoutingKeyShowDate = "catalog.showdate"
)

var errUnknownRoutingKey = errors.New("unknown routing key")

// CatalogConsumer keeps the local venues, shows and show dates in sync with the
// catalog publisher.
type CatalogConsumer struct {
	repo repository.CatalogRepository
	log  *zap.Logger
}

func NewCatalogConsumer(repo repository.CatalogRepository, log *zap.Logger) *CatalogConsumer {
	return &CatalogConsumer{repo: repo, log: log}
}

// Start handles deliveries in the background until msgs is closed or ctx is done.
// The returned channel is closed when the loop exits.
func (cc *CatalogConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					cc.log.Info("delivery channel closed, stopping catalog consumer")
					return
				}
				cc.handleMessage(ctx, msg)
			}
		}
	}()
	return done
}

func (cc *CatalogConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	log := cc.log.With(zap.String("routingKey", msg.RoutingKey))

	upsert, err := cc.decode(msg)
	if err != nil {
		log.Error("dropping catalog message", zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}

	if err := upsert(ctx); err != nil {
		// A missing parent will not appear by retrying the same message.
		if errors.Is(err, repository.ErrReferenceNotFound) {
			log.Warn("dropping catalog message with unknown parent", zap.Error(err))
			_ = msg.Nack(false, false)
			return
		}
		log.Error("catalog upsert failed, requeueing", zap.Error(err))
		_ = msg.Nack(false, true)
		return
	}

	log.Debug("catalog message applied")
	_ = msg.Ack(false)
}

// decode turns a delivery into the upsert it asks for.
func (cc *CatalogConsumer) decode(msg amqp.Delivery) (func(context.Context) error, error) {
	switch msg.RoutingKey {
	case RoutingKeyVenue:
		var m dto.VenueMessage
		if err := json.Unmarshal(msg.Body, &m); err != nil {
			return nil, fmt.Errorf("unmarshal venue: %w", err)
		}
		return func(ctx context.Context) error { return cc.repo.UpsertVenue(ctx, m.ToModel()) }, nil
	case RoutingKeyShow:
		var m dto.ShowMessage
		if err := json.Unmarshal(msg.Body, &m); err != nil {
			return nil, fmt.Errorf("unmarshal show: %w", err)
		}
		return func(ctx context.Context) error { return cc.repo.UpsertShow(ctx, m.ToModel()) }, nil
	case RoutingKeyShowDate:
		var m dto.ShowDateMessage
		if err := json.Unmarshal(msg.Body, &m); err != nil {
			return nil, fmt.Errorf("unmarshal show date: %w", err)
		}
		return func(ctx context.Context) error { return cc.repo.UpsertShowDate(ctx, m.ToModel()) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownRoutingKey, msg.RoutingKey)
	}
}
