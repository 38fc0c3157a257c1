package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ImportExchange        = "import.exchange"
	ImportFetchQueue      = "import.fetch"
	ImportFetchRoutingKey = "import.fetch"
)

// ImportJobMessage asks the import worker to pull a remote resource into the
// media bucket.
type ImportJobMessage struct {
	JobID       string            `json:"job_id"`
	URL         string            `json:"url"`
	Key         string            `json:"key"`
	ContentType string            `json:"content_type,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequestedBy string            `json:"requested_by,omitempty"`
	Timestamp   int64             `json:"timestamp"`
}

// ImportProduceService publishes import jobs for the consumer worker.
type ImportProduceService struct {
	channel *amqp.Channel
}

func InitImportProduceService(channel *amqp.Channel) *ImportProduceService {
	service := &ImportProduceService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		ImportExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Import exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		ImportFetchQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare Import queue: " + err.Error())
	}

	err = channel.QueueBind(
		ImportFetchQueue,
		ImportFetchRoutingKey,
		ImportExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Import queue: " + err.Error())
	}

	return service
}

// PublishImportJob enqueues one import job with persistent delivery.
func (s *ImportProduceService) PublishImportJob(ctx context.Context, msg ImportJobMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		ImportExchange,
		ImportFetchRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
