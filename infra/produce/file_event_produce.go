package produce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventFileUploaded     = "file.uploaded"
	EventFileUploadFailed = "file.upload_failed"
)

type FileEvent struct {
	Type   string    `json:"type"`
	FileID uuid.UUID `json:"file_id"`
	UserID uint      `json:"user_id"`
	Path   string    `json:"path"`
	Name   string    `json:"name"`
	Size   int64     `json:"size"`
	At     time.Time `json:"at"`
}

type FileEventProduce struct {
	channel *amqp.Channel
	queue   string
}

func NewFileEventProduce(channel *amqp.Channel, queue string) (*FileEventProduce, error) {
	_, err := channel.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &FileEventProduce{
		channel: channel,
		queue:   queue,
	}, nil
}

func (p *FileEventProduce) Publish(ctx context.Context, event FileEvent) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal file event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish file event: %w", err)
	}

	return nil
}
