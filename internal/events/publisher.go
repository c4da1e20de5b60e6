// Package events publishes business lifecycle events to Kafka. The
// publisher is optional: a nil *Publisher is a safe no-op so the service
// runs without a broker in development.
package events

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"time"

	"github.com/loadshare-sa/loadshare-backend/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	TypeBusinessRegistered = "business.registered"
	TypeBusinessReviewed   = "business.reviewed"
)

type BusinessEvent struct {
	Type       string    `json:"type"`
	BusinessID string    `json:"business_id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	AreaID     string    `json:"area_id"`
	Action     string    `json:"action,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher returns nil when no broker is configured.
func NewPublisher(broker, topic, username, password string) *Publisher {
	if broker == "" {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}

	if username != "" {
		writer.Transport = &kafka.Transport{
			SASL: plain.Mechanism{Username: username, Password: password},
			TLS:  &tls.Config{},
		}
	}

	return &Publisher{writer: writer}
}

func (p *Publisher) BusinessRegistered(b *models.Business) error {
	return p.publish(BusinessEvent{
		Type:       TypeBusinessRegistered,
		BusinessID: b.ID.String(),
		OwnerID:    b.OwnerID.String(),
		Name:       b.Name,
		AreaID:     b.AreaID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) BusinessReviewed(b *models.Business, action string) error {
	return p.publish(BusinessEvent{
		Type:       TypeBusinessReviewed,
		BusinessID: b.ID.String(),
		OwnerID:    b.OwnerID.String(),
		Name:       b.Name,
		AreaID:     b.AreaID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(event BusinessEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BusinessID),
		Value: value,
		Time:  time.Now(),
	})
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
